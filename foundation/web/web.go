package web

import (
	"log"
	"net/http"
	"os"
	"syscall"

	"github.com/gin-gonic/gin"
)

// Handler is the signature used by all application handlers in this service.
type Handler func(c *Context) error

// Middleware is a function designed to run some code before and/or after
// another Handler.
type Middleware func(handler Handler) Handler

// App is the entrypoint into our application and what configures our context
// object for each of our http handlers.
type App struct {
	*gin.Engine
	shutdown chan os.Signal
}

// NewApp creates an App value that handles a set of routes for the application.
func NewApp(shutdown chan os.Signal) *App {
	return &App{
		Engine:   gin.New(),
		shutdown: shutdown,
	}
}

// SignalShutdown is used to gracefully shut down the app when an integrity
// issue is identified.
func (a *App) SignalShutdown() {
	a.shutdown <- syscall.SIGTERM
}

// wrapMiddleware wraps the handler with the given middleware, last one closest
// to the handler.
func wrapMiddleware(handler Handler, mw []Middleware) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h := mw[i]
		if h != nil {
			handler = h(handler)
		}
	}
	return handler
}

func (a *App) handle(method, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(handler, mw)

	h := func(c *gin.Context) {
		ctx := &Context{Context: c, Ctx: c.Request.Context()}

		if err := handler(ctx); err != nil {
			// The handler was unable to respond to the client. Nothing left
			// to do but shut the service down.
			log.Println("handler error:", err)
			a.SignalShutdown()
		}
	}

	a.Handle(method, path, h)
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodDelete, path, handler, mw...)
}

func (a *App) Head(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodHead, path, handler, mw...)
}
