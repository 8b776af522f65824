package views

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/goliatone/go-crudgen/pkg/model"
	"github.com/goliatone/go-crudgen/pkg/nav"
	"github.com/goliatone/go-crudgen/pkg/render"
	"github.com/goliatone/go-crudgen/pkg/repository"
	"github.com/goliatone/go-crudgen/pkg/urls"
)

// CRUD carries the scaffolded handlers for one model: list, create, detail,
// update, and delete, wired to a generic repository and the shared View.
type CRUD[T any] struct {
	view *View
	meta model.Metadata
	repo *repository.Repository[T]
	cfg  crudConfig
}

type crudConfig struct {
	listColumns  []string
	listActions  []nav.Action
	pageSize     int
	createButton bool
	backButton   bool
	updateButton bool
	deleteButton bool
	actions      []string
}

// CRUDOption configures one scaffolded model.
type CRUDOption func(*crudConfig)

// WithListColumns restricts the list table to the named columns, in order.
func WithListColumns(columns ...string) CRUDOption {
	return func(cfg *crudConfig) { cfg.listColumns = columns }
}

// WithListActions replaces the default row action buttons.
func WithListActions(actions ...nav.Action) CRUDOption {
	return func(cfg *crudConfig) { cfg.listActions = actions }
}

// WithPageSize overrides the configured page size for this model's list.
func WithPageSize(size int) CRUDOption {
	return func(cfg *crudConfig) {
		if size > 0 {
			cfg.pageSize = size
		}
	}
}

// WithoutCreateButton hides the Create button on the list page.
func WithoutCreateButton() CRUDOption {
	return func(cfg *crudConfig) { cfg.createButton = false }
}

// WithoutBackButton hides the Back button on detail and form pages.
func WithoutBackButton() CRUDOption {
	return func(cfg *crudConfig) { cfg.backButton = false }
}

// WithoutUpdateButton hides the Update button on the detail page.
func WithoutUpdateButton() CRUDOption {
	return func(cfg *crudConfig) { cfg.updateButton = false }
}

// WithoutDeleteButton hides the Delete button on the detail page.
func WithoutDeleteButton() CRUDOption {
	return func(cfg *crudConfig) { cfg.deleteButton = false }
}

// WithActions restricts which CRUD routes get mounted. Defaults to all five.
func WithActions(actions ...string) CRUDOption {
	return func(cfg *crudConfig) { cfg.actions = actions }
}

// NewCRUD builds the handler set for one model, deriving metadata from the
// type's struct tags.
func NewCRUD[T any](view *View, db *bun.DB, options ...CRUDOption) (*CRUD[T], error) {
	if view == nil {
		return nil, errors.New("views: view is required")
	}
	if db == nil {
		return nil, errors.New("views: db is required")
	}

	meta, err := model.Describe(*new(T))
	if err != nil {
		return nil, err
	}

	cfg := crudConfig{
		listActions: []nav.Action{
			{Kind: nav.ActionDetailAJAX},
			{Kind: nav.ActionUpdate},
			{Kind: nav.ActionDeleteAJAX},
		},
		pageSize:     view.settings.PageSize,
		createButton: true,
		backButton:   true,
		updateButton: true,
		deleteButton: true,
		actions: []string{
			urls.ActionList,
			urls.ActionCreate,
			urls.ActionDetail,
			urls.ActionUpdate,
			urls.ActionDelete,
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	handlers := &CRUD[T]{
		view: view,
		meta: meta,
		repo: repository.New[T](db),
		cfg:  cfg,
	}
	if _, err := handlers.listFields(); err != nil {
		return nil, err
	}
	return handlers, nil
}

// Metadata returns the derived model metadata.
func (h *CRUD[T]) Metadata() model.Metadata { return h.meta }

// Repository returns the backing repository.
func (h *CRUD[T]) Repository() *repository.Repository[T] { return h.repo }

func (h *CRUD[T]) listFields() ([]model.Field, error) {
	if len(h.cfg.listColumns) == 0 {
		return h.meta.Fields, nil
	}
	fields := make([]model.Field, 0, len(h.cfg.listColumns))
	for _, column := range h.cfg.listColumns {
		field, ok := h.meta.Field(column)
		if !ok {
			return nil, fmt.Errorf("views: model %s has no column %q", h.meta.Name, column)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// List serves the paginated sortable table page. A non-numeric page query
// parameter or a page below one is a 404; a page past the end clamps to the
// last page.
func (h *CRUD[T]) List(c *fiber.Ctx) error {
	pageNum, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || pageNum < 1 {
		return fiber.ErrNotFound
	}

	order := c.Query("order", "asc")
	if order != "asc" && order != "desc" {
		order = "asc"
	}
	sort := c.Query("sort")
	if sort != "" && !h.meta.HasColumn(sort) {
		sort = ""
	}
	column := sort
	if column == "" {
		column = h.meta.PKField().Column
	}
	clause := column + " ASC"
	if order == "desc" {
		clause = column + " DESC"
	}

	page, err := h.repo.Page(c.UserContext(), repository.PageRequest{
		Page:  pageNum,
		Size:  h.cfg.pageSize,
		Order: []string{clause},
	})
	if err != nil {
		h.view.log.Error("list query failed", zap.String("model", h.meta.Name), zap.Error(err))
		return fiber.ErrInternalServerError
	}

	fields, err := h.listFields()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	objects := make([]any, len(page.Items))
	for i, item := range page.Items {
		objects[i] = item
	}

	body, err := nav.TableBody(h.meta, objects, fields, h.cfg.listActions, h.view.resolver)
	if err != nil {
		h.view.log.Error("table body failed", zap.String("model", h.meta.Name), zap.Error(err))
		return fiber.ErrInternalServerError
	}

	ctx := h.view.pageContext(c.Path(), h.meta.LabelPlural, h.listCrumbs())
	ctx["table_title"] = h.meta.LabelPlural
	ctx["table_header"] = nav.TableHeader(h.meta, fields, sort, order, len(h.cfg.listActions) > 0)
	ctx["table_body"] = body
	ctx["page"] = page.Number
	ctx["page_count"] = page.PageCount
	ctx["has_prev"] = page.HasPrev()
	ctx["has_next"] = page.HasNext()
	ctx["prev_page"] = page.Number - 1
	ctx["next_page"] = page.Number + 1
	ctx["is_button_create"] = h.cfg.createButton
	if h.cfg.createButton {
		if url, err := h.view.resolver.Reverse(urls.CreateName(h.meta.Name)); err == nil {
			ctx["create_url"] = url
		} else {
			ctx["is_button_create"] = false
		}
	}
	return h.view.renderPage(c, render.KeyList, ctx)
}

// Detail serves the field card for one object. Ajax requests get a JSON
// payload carrying the fragment for the dashboard modal instead of a page.
func (h *CRUD[T]) Detail(c *fiber.Ctx) error {
	pk, err := h.pkParam(c)
	if err != nil {
		return err
	}
	entity, err := h.fetch(c, pk)
	if err != nil {
		return err
	}

	items, err := nav.DetailItems(entity, h.meta.Fields)
	if err != nil {
		h.view.log.Error("detail items failed", zap.String("model", h.meta.Name), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	title := fmt.Sprintf("%s %v", h.meta.Label, pk)

	if isAJAX(c) {
		fragment, err := h.view.pages.Fragment(render.KeyDetailAJAX, map[string]any{
			"detail_items": items,
		})
		if err != nil {
			h.view.log.Error("detail fragment failed", zap.String("model", h.meta.Name), zap.Error(err))
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"title": title, "html": fragment})
	}

	ctx := h.view.pageContext(c.Path(), title, h.objectCrumbs(title, c.Path()))
	ctx["detail_card_title"] = title
	ctx["detail_items"] = items
	ctx["is_button_back"] = h.cfg.backButton
	if h.cfg.backButton {
		ctx["back_url"] = h.listURL()
	}
	ctx["is_button_update"] = h.cfg.updateButton
	if h.cfg.updateButton {
		if url, err := h.view.resolver.Reverse(urls.UpdateName(h.meta.Name), pk); err == nil {
			ctx["update_url"] = url
		} else {
			ctx["is_button_update"] = false
		}
	}
	ctx["is_button_delete"] = h.cfg.deleteButton
	if h.cfg.deleteButton {
		if url, err := h.view.resolver.Reverse(urls.DeleteName(h.meta.Name), pk); err == nil {
			ctx["delete_url"] = url
		} else {
			ctx["is_button_delete"] = false
		}
	}
	return h.view.renderPage(c, render.KeyDetail, ctx)
}

// Create serves the empty form on GET and persists a new object on POST,
// redirecting to its detail page.
func (h *CRUD[T]) Create(c *fiber.Ctx) error {
	title := "Create " + h.meta.Label
	if c.Method() == fiber.MethodGet {
		return h.renderForm(c, render.KeyCreate, title, title, nil, nil)
	}

	entity := new(T)
	if formErrors := h.bindForm(c, entity); len(formErrors) > 0 {
		c.Status(fiber.StatusBadRequest)
		return h.renderForm(c, render.KeyCreate, title, title, entity, formErrors)
	}

	if err := h.repo.Insert(c.UserContext(), entity); err != nil {
		h.view.log.Error("insert failed", zap.String("model", h.meta.Name), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return h.redirectToDetail(c, entity)
}

// Update serves the prefilled form on GET and rewrites the object on POST,
// redirecting to its detail page.
func (h *CRUD[T]) Update(c *fiber.Ctx) error {
	pk, err := h.pkParam(c)
	if err != nil {
		return err
	}
	entity, err := h.fetch(c, pk)
	if err != nil {
		return err
	}

	title := "Update " + h.meta.Label
	submit := "Submit " + h.meta.Label
	if c.Method() == fiber.MethodGet {
		return h.renderForm(c, render.KeyUpdate, title, submit, entity, nil)
	}

	if formErrors := h.bindForm(c, entity); len(formErrors) > 0 {
		c.Status(fiber.StatusBadRequest)
		return h.renderForm(c, render.KeyUpdate, title, submit, entity, formErrors)
	}

	if err := h.repo.Update(c.UserContext(), entity); err != nil {
		h.view.log.Error("update failed", zap.String("model", h.meta.Name), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return h.redirectToDetail(c, entity)
}

// Delete serves the confirmation on GET and removes the object on POST. Ajax
// requests exchange JSON payloads for the dashboard modal instead of pages.
func (h *CRUD[T]) Delete(c *fiber.Ctx) error {
	pk, err := h.pkParam(c)
	if err != nil {
		return err
	}

	title := "Delete " + h.meta.Label
	message := fmt.Sprintf("Are you sure you want to delete %s %v?", h.meta.Label, pk)

	if c.Method() == fiber.MethodGet {
		if _, err := h.fetch(c, pk); err != nil {
			return err
		}
		if isAJAX(c) {
			return c.JSON(fiber.Map{"title": title, "message": message})
		}
		ctx := h.view.pageContext(c.Path(), title, h.objectCrumbs(title, c.Path()))
		ctx["delete_card_title"] = title
		ctx["message_delete"] = message
		ctx["form_method"] = "post"
		ctx["submit_button_text"] = "Delete"
		ctx["is_button_back"] = h.cfg.backButton
		if h.cfg.backButton {
			ctx["back_url"] = h.listURL()
		}
		return h.view.renderPage(c, render.KeyDelete, ctx)
	}

	err = h.repo.Delete(c.UserContext(), h.meta.PKField().Column, pk)
	if isAJAX(c) {
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Error deleting"})
		}
		return c.JSON(fiber.Map{"message": "Deleted successfully"})
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		h.view.log.Error("delete failed", zap.String("model", h.meta.Name), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.Redirect(h.listURL(), fiber.StatusSeeOther)
}

func (h *CRUD[T]) renderForm(c *fiber.Ctx, key, title, submit string, entity any, formErrors []string) error {
	fields, err := nav.FormFields(h.meta, entity)
	if err != nil {
		h.view.log.Error("form fields failed", zap.String("model", h.meta.Name), zap.Error(err))
		return fiber.ErrInternalServerError
	}

	formCtx := map[string]any{
		"form_title":         title,
		"form_method":        "post",
		"form_fields":        fields,
		"form_errors":        formErrors,
		"submit_button_text": submit,
		"is_button_back":     h.cfg.backButton,
	}
	if h.cfg.backButton {
		formCtx["back_url"] = h.listURL()
	}
	form, err := h.view.pages.Fragment(render.KeyForm, formCtx)
	if err != nil {
		h.view.log.Error("form fragment failed", zap.String("model", h.meta.Name), zap.Error(err))
		return fiber.ErrInternalServerError
	}

	ctx := h.view.pageContext(c.Path(), title, h.objectCrumbs(title, c.Path()))
	ctx["form"] = form
	return h.view.renderPage(c, key, ctx)
}

// bindForm assigns posted values onto the entity, skipping the primary key.
// Conversion failures collect into user-facing messages.
func (h *CRUD[T]) bindForm(c *fiber.Ctx, entity *T) []string {
	var formErrors []string
	pk := h.meta.PKField()
	for _, field := range h.meta.Fields {
		if field.Column == pk.Column {
			continue
		}
		raw := c.FormValue(field.Column)
		if err := model.SetValue(entity, field, raw); err != nil {
			formErrors = append(formErrors, fmt.Sprintf("%s: invalid value %q", field.Label, raw))
		}
	}
	return formErrors
}

func (h *CRUD[T]) fetch(c *fiber.Ctx, pk any) (*T, error) {
	entity, err := h.repo.Get(c.UserContext(), h.meta.PKField().Column, pk)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fiber.ErrNotFound
	}
	if err != nil {
		h.view.log.Error("fetch failed", zap.String("model", h.meta.Name), zap.Error(err))
		return nil, fiber.ErrInternalServerError
	}
	return entity, nil
}

// pkParam converts the :id path parameter according to the pk field kind.
// Integer keys reject non-numeric input with a 404.
func (h *CRUD[T]) pkParam(c *fiber.Ctx) (any, error) {
	raw := c.Params("id")
	if raw == "" {
		return nil, fiber.ErrNotFound
	}
	if h.meta.PKField().Kind == model.KindInteger {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fiber.ErrNotFound
		}
		return parsed, nil
	}
	return raw, nil
}

func (h *CRUD[T]) redirectToDetail(c *fiber.Ctx, entity *T) error {
	pk, err := model.PKValue(h.meta, entity)
	if err == nil {
		if url, reverseErr := h.view.resolver.Reverse(urls.DetailName(h.meta.Name), pk); reverseErr == nil {
			return c.Redirect(url, fiber.StatusSeeOther)
		}
	}
	return c.Redirect(h.listURL(), fiber.StatusSeeOther)
}

func (h *CRUD[T]) listURL() string {
	if url, err := h.view.resolver.Reverse(urls.ListName(h.meta.Name)); err == nil {
		return url
	}
	return "/"
}

func (h *CRUD[T]) listCrumbs() []nav.Crumb {
	return []nav.Crumb{
		{Title: "Home", URL: h.view.HomeURL()},
		{Title: h.meta.LabelPlural, URL: h.listURL()},
	}
}

// objectCrumbs appends the current page as the active trailing crumb.
func (h *CRUD[T]) objectCrumbs(current, path string) []nav.Crumb {
	return append(h.listCrumbs(), nav.Crumb{Title: current, URL: path})
}
