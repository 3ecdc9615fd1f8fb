// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package articles

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements article-related HTTP endpoints.
type Handler struct {
	articleService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{articleService: service}
}

// Routes returns a [chi.Router] with the owner-scoped article routes.
//
// Every route here requires an authenticated caller; the composition root
// wraps this router with the mandatory auth middleware.
//
// # Endpoints
//   - GET    /      : Lists the caller's own articles, paginated.
//   - POST   /      : Creates an article owned by the caller.
//   - PUT    /{id}  : Partially updates an owned article.
//   - DELETE /{id}  : Deletes an owned article.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type createRequest struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"is_public"`
}

type updateRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"is_public"`
}

// # Owner-Scoped Endpoints

/*
list returns one page of the caller's articles.

GET /api/articles?page=1&limit=20

Response:
  - 200: []Article with pagination metadata
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	items, meta, err := handler.articleService.List(request.Context(), ownerID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, meta)
}

/*
create persists a new article owned by the caller.

POST /api/articles

Description: The slug is optional; when omitted it is derived from the title.

Request:
  - Body: createRequest (Slug?, Title, Content, IsPublic)

Response:
  - 201: Article: Created entity
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Missing or invalid token
  - 409: ErrConflict: Slug already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLength).
		Required(FieldContent, input.Content)

	if input.Slug != "" {
		validator.MaxLen(FieldSlug, input.Slug, SlugMaxLength).
			Slug(FieldSlug, input.Slug)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Create(request.Context(), ownerID, CreateInput{
		Slug:     input.Slug,
		Title:    input.Title,
		Content:  input.Content,
		IsPublic: input.IsPublic,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

/*
update applies a partial update to an owned article.

PUT /api/articles/{id}

Description: Absent body fields keep their stored values. The slug and the
owner cannot be changed.

Request:
  - Body: updateRequest (Title?, Content?, IsPublic?)

Response:
  - 200: Article: Updated entity
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Missing or invalid token
  - 403: ErrForbidden: Article exists but belongs to someone else
  - 404: ErrNotFound: No article with this id
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := articleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, TitleMaxLength)
	}
	if input.Content != nil {
		validator.Required(FieldContent, *input.Content)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Update(request.Context(), callerID, id, UpdateInput{
		Title:    input.Title,
		Content:  input.Content,
		IsPublic: input.IsPublic,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
delete removes an owned article.

DELETE /api/articles/{id}

Description: An id that exists under another owner yields the same 404 as an
id that does not exist at all.

Response:
  - 204: No content
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: No owned article with this id
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := articleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.articleService.Delete(request.Context(), callerID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Public Endpoint

/*
GetBySlug serves a single article by its public slug.

GET /{slug}

Description: Works for anonymous callers. A private article is only returned
to its owner; everyone else sees a 404 identical to an unknown slug.

Response:
  - 200: Article: Readable entity
  - 404: ErrNotFound: Unknown slug, or a private article the caller may not see
*/
func (handler *Handler) GetBySlug(writer http.ResponseWriter, request *http.Request) {
	articleSlug := requestutil.Param(request, "slug")

	validator := &validate.Validator{}
	validator.Required(FieldSlug, articleSlug).
		MaxLen(FieldSlug, articleSlug, SlugMaxLength).
		Slug(FieldSlug, articleSlug)

	if err := validator.Err(); err != nil {
		// An ill-formed slug can never match a row. Report it like any
		// other miss instead of leaking the validation detail.
		respond.Error(writer, request, apperr.NotFound("Article"))
		return
	}

	callerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		callerID = claims.Subject
	}

	article, err := handler.articleService.GetBySlug(request.Context(), callerID, articleSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// articleID parses the {id} route parameter.
func articleID(request *http.Request) (int, error) {
	raw := requestutil.Param(request, "id")

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "id",
			Message: "The article id must be a positive integer",
		})
	}

	return id, nil
}
