package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"energyvis/html"
	"energyvis/script"
	_type "energyvis/type"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (a *visApp) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", a.rootHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/charts", a.chartsHandler).Methods(http.MethodGet)
	r.HandleFunc("/charts/{target:[a-z0-9]+}.{format:png|svg}", a.imageHandler).Methods(http.MethodGet)
	r.HandleFunc("/report", a.reportHandler).Methods(http.MethodGet)
	return r
}

func (a *visApp) serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.DstPort,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server started", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.logger.Info("server stopping")
		return srv.Shutdown(shutdownCtx)
	}
}

// cycle runs one load cycle for a request. Load failures are already folded
// into the pages, so only the result is returned.
func (a *visApp) cycle(r *http.Request) *script.Result {
	res, _ := a.loader.Run(r.Context())
	a.paperReport(res)
	return res
}

func (a *visApp) rootHandler(w http.ResponseWriter, req *http.Request) {
	res := a.cycle(req)
	data := html.PageData{CycleID: res.CycleID, Charts: res.Pages}
	if res.Err != nil {
		data.Error = res.Err.Error()
	}

	var buf bytes.Buffer
	if err := html.RenderPage(&buf, data); err != nil {
		a.logger.Error("render page", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (a *visApp) chartsHandler(w http.ResponseWriter, req *http.Request) {
	res := a.cycle(req)
	data := html.PageData{CycleID: res.CycleID, Charts: res.Pages}
	if res.Err != nil {
		data.Error = res.Err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Error("encode charts", zap.Error(err))
	}
}

func (a *visApp) imageHandler(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	res := a.cycle(req)

	for _, page := range res.Pages {
		if page.Target != vars["target"] {
			continue
		}
		var buf bytes.Buffer
		if err := script.RenderImage(&buf, page, vars["format"]); err != nil {
			a.logger.Error("render image", zap.String("chart", page.Target), zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if vars["format"] == "svg" {
			w.Header().Set("Content-Type", "image/svg+xml")
		} else {
			w.Header().Set("Content-Type", "image/png")
		}
		_, _ = w.Write(buf.Bytes())
		return
	}
	http.NotFound(w, req)
}

func (a *visApp) reportHandler(w http.ResponseWriter, req *http.Request) {
	res := a.cycle(req)

	var buf bytes.Buffer
	if err := script.PaperReport(&buf, res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if res.Failed() {
		w.Header().Set("X-Load-Error", _type.ErrCodeLoadFailure.String())
	}
	_, _ = w.Write(buf.Bytes())
}
