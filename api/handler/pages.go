package handler

import (
	"path/filepath"

	"github.com/valyala/fasthttp"
)

// PageHandler serves the browser client's static pages. The pages themselves
// are public; the task-board page sits behind the page-auth gate, and its
// script also redirects to /login when no token is cached client-side.
type PageHandler struct {
	webDir string
}

func NewPageHandler(webDir string) *PageHandler {
	return &PageHandler{webDir: webDir}
}

func (h *PageHandler) Index(ctx *fasthttp.RequestCtx) {
	h.serve(ctx, "index.html")
}

func (h *PageHandler) Login(ctx *fasthttp.RequestCtx) {
	h.serve(ctx, "login.html")
}

func (h *PageHandler) ViewTasks(ctx *fasthttp.RequestCtx) {
	h.serve(ctx, "viewTasks.html")
}

func (h *PageHandler) ResetPassword(ctx *fasthttp.RequestCtx) {
	h.serve(ctx, "reset-password.html")
}

func (h *PageHandler) serve(ctx *fasthttp.RequestCtx, page string) {
	fasthttp.ServeFile(ctx, filepath.Join(h.webDir, page))
}

// StaticDir returns the filesystem root for /static assets.
func (h *PageHandler) StaticDir() string {
	return filepath.Join(h.webDir, "static")
}
