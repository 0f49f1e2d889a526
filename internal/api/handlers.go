package api

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/promptdesk/assistant/internal/core"
)

type APIHandler struct {
	assistant *core.AssistantService
	logger    logrus.FieldLogger
}

func NewAPIHandler(as *core.AssistantService, logger logrus.FieldLogger) *APIHandler {
	return &APIHandler{assistant: as, logger: logger}
}

func (h *APIHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.html", indexView{Functions: functionOptions})
}

func (h *APIHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	fields, ok := requireFormFields(w, r, "function_choice", "prompt_style", "user_input")
	if !ok {
		return
	}

	outcome := h.assistant.Generate(r.Context(), core.PromptRequest{
		FunctionChoice: fields["function_choice"],
		Style:          fields["prompt_style"],
		Input:          fields["user_input"],
	})

	h.render(w, r, "result.html", resultView{
		Query:            outcome.Query,
		ResponseHTML:     template.HTML(outcome.ResponseHTML),
		OriginalResponse: outcome.RawResponse,
	})
}

func (h *APIHandler) FeedbackHandler(w http.ResponseWriter, r *http.Request) {
	fields, ok := requireFormFields(w, r, "query", "response", "helpful")
	if !ok {
		return
	}

	h.assistant.SubmitFeedback(fields["query"], fields["response"], fields["helpful"])
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *APIHandler) ListFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.assistant.ListFeedback()
	if err != nil {
		h.requestLogger(r).Errorf("Error listing feedback: %v", err)
		http.Error(w, "Failed to list feedback", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *APIHandler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		h.requestLogger(r).Errorf("Error rendering %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *APIHandler) requestLogger(r *http.Request) logrus.FieldLogger {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return h.logger.WithField("request_id", id)
	}
	return h.logger
}

// requireFormFields reads the named POST fields, answering 400 when any is absent.
func requireFormFields(w http.ResponseWriter, r *http.Request, names ...string) (map[string]string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}

	fields := make(map[string]string, len(names))
	for _, name := range names {
		if !r.PostForm.Has(name) {
			http.Error(w, "Missing form field: "+name, http.StatusBadRequest)
			return nil, false
		}
		fields[name] = r.PostForm.Get(name)
	}
	return fields, true
}
