package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/printcost/internal/calculator"
	"github.com/Simplici0/printcost/internal/config"
	"github.com/Simplici0/printcost/internal/db"
	"github.com/Simplici0/printcost/internal/format"
	"github.com/Simplici0/printcost/internal/logging"
	"github.com/Simplici0/printcost/internal/migrations"
	"github.com/Simplici0/printcost/internal/sheet"
	"github.com/Simplici0/printcost/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

type server struct {
	calc   *calculator.Calculator
	logger *zap.Logger
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type globalField struct {
	Key   string
	Label string
	Value string
}

type sheetViewData struct {
	baseViewData
	Globals []globalField
	Rows    []calculator.Row
}

var globalLabels = map[string]string{
	store.GlobalElectricityPrice: "Electricity price (per kWh)",
	store.GlobalHandlingCost:     "Handling cost",
	store.GlobalImplicitCost:     "Implicit cost (%)",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(database, logger); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	calc := calculator.New(store.NewSQLite(database, cfg.StateKey), format.NewCurrency(cfg.Currency), cfg.Units, logger)
	if _, err := calc.Load(ctx); err != nil {
		logger.Warn("ignoring saved state", zap.Error(err))
	}

	if !isLoopback(cfg.Addr) {
		logger.Warn("listening on a non-loopback address; the calculator has no access control", zap.String("addr", cfg.Addr))
	}

	srv := &server{calc: calc, logger: logger}
	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, srv.routes()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logging.RequestLogger(s.logger))
	r.Get("/", s.handleSheet)
	r.Post("/globals", s.handleGlobalsSubmit)
	r.Post("/printers/{index}", s.handlePrinterSubmit)
	r.Post("/reset", s.handleReset)
	return r
}

func (s *server) handleSheet(w http.ResponseWriter, r *http.Request) {
	globals := s.calc.Globals()
	fields := make([]globalField, 0, len(sheet.GlobalKeys))
	for _, key := range sheet.GlobalKeys {
		fields = append(fields, globalField{Key: key, Label: globalLabels[key], Value: globals[key]})
	}

	s.renderTemplate(w, "sheet.html", sheetViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Globals: fields,
		Rows:    s.calc.Rows(),
	})
}

func (s *server) handleGlobalsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if err := s.calc.OnGlobalsChanged(r.Context(), submitted(r.PostForm, sheet.GlobalKeys)); err != nil {
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handlePrinterSubmit(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		http.Error(w, "invalid printer index", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if _, err := s.calc.OnUnitFieldsChanged(r.Context(), index, submitted(r.PostForm, sheet.RowFields)); err != nil {
		if errors.Is(err, sheet.ErrOutOfRange) {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// submitted picks the posted values of the given fields.
func submitted(form url.Values, fields []string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		if _, ok := form[field]; ok {
			values[field] = form.Get(field)
		}
	}
	return values
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.calc.Reset(r.Context()); err != nil {
		s.logger.Error("failed to reset", zap.Error(err))
		http.Error(w, "failed to reset saved state", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/?success=Defaults+restored", http.StatusSeeOther)
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		s.logger.Error("failed to parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.logger.Error("failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}

func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
