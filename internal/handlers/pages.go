package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-site/internal/middleware"
	"portfolio-site/internal/models"
	"portfolio-site/internal/services"
	"portfolio-site/internal/views"
)

const maxContactFormBytes = 64 << 10

type blogCatalog interface {
	List() []models.BlogPost
	Get(slug string) (*models.BlogPost, error)
}

type contactSubmitter interface {
	Enabled() bool
	Submit(ctx context.Context, req models.ContactRequest, remoteIP string) (*models.ContactMessage, error)
}

type PageHandler struct {
	renderer *views.Renderer
	stack    []models.StackEntry
	blog     blogCatalog
	contact  contactSubmitter
}

// NewPageHandler wires the renderer to the startup-loaded stack list and blog catalogue.
func NewPageHandler(renderer *views.Renderer, stack []models.StackEntry, blog blogCatalog, contact contactSubmitter) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		stack:    stack,
		blog:     blog,
		contact:  contact,
	}
}

// pageData threads the visitor's theme and the shared stack list into every page.
func (h *PageHandler) pageData(r *http.Request) views.PageData {
	return views.PageData{
		Theme: middleware.GetSession(r.Context()).Theme(),
		Stack: h.stack,
	}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	data.Posts = latest(h.blog.List(), 3)
	h.renderer.Render(w, http.StatusOK, "index", data)
}

func (h *PageHandler) Projects(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "projects", h.pageData(r))
}

func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	data.Posts = h.blog.List()
	h.renderer.Render(w, http.StatusOK, "about", data)
}

func (h *PageHandler) Blog(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	data.Posts = h.blog.List()
	h.renderer.Render(w, http.StatusOK, "blog", data)
}

func (h *PageHandler) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.blog.Get(slug)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			h.NotFound(w, r)
			return
		}
		slog.Error("failed to load post", "slug", slug, "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "Something went wrong", "Please try again later.")
		return
	}

	data := h.pageData(r)
	data.Post = post
	data.Slug = slug
	h.renderer.Render(w, http.StatusOK, "post", data)
}

func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	data.Contact.Sent = r.URL.Query().Get("sent") == "1"
	data.Contact.Unavailable = !h.contact.Enabled()
	h.renderer.Render(w, http.StatusOK, "contact", data)
}

// SubmitContact handles the contact form post, redirecting on success so a
// reload does not resubmit.
func (h *PageHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactFormBytes)
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad request", "The form could not be read.")
		return
	}

	req := models.ContactRequest{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}

	_, err := h.contact.Submit(r.Context(), req, remoteIP(r))
	if err == nil {
		http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
		return
	}

	data := h.pageData(r)
	data.Contact = views.ContactForm{Name: req.Name, Email: req.Email, Message: req.Message}

	var (
		validation  *services.ValidationError
		unavailable *services.UnavailableError
	)
	switch {
	case errors.As(err, &validation):
		data.Contact.Errors = validation.Fields
		h.renderer.Render(w, http.StatusBadRequest, "contact", data)
	case errors.As(err, &unavailable):
		data.Contact.Unavailable = true
		h.renderer.Render(w, http.StatusServiceUnavailable, "contact", data)
	default:
		slog.Error("contact submission failed", "error", err, "request_id", r.Header.Get("X-Request-ID"))
		data.Contact.Failed = true
		h.renderer.Render(w, http.StatusInternalServerError, "contact", data)
	}
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found", "The page you're looking for doesn't exist.")
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	data := h.pageData(r)
	data.Error = views.ErrorPage{Title: title, Message: message}
	h.renderer.Render(w, status, "error", data)
}

func latest(posts []models.BlogPost, n int) []models.BlogPost {
	if len(posts) > n {
		return posts[:n]
	}
	return posts
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
