package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

// ---- Consumer-defined interfaces (private) ----

type quizSession interface {
	Reset()
	SetMode(token string) error
	NextWord() (domain.Term, bool)
	CheckAnswer(term domain.Term, input string) bool
	IncrementIncorrectRepeat(term domain.Term) int
	EndSession(ctx context.Context) (domain.Result, error)
	UpdateWords(terms []domain.Term)
	Stats() domain.Stats
}

type wordStore interface {
	CheckName(name string) (string, error)
	Save(name string, r io.Reader) (string, error)
}

// parseFunc turns one uploaded CSV file into terms.
type parseFunc func(r io.Reader) ([]domain.Term, error)

// QuizHandler serves the quiz REST endpoints.
type QuizHandler struct {
	session   quizSession
	parse     parseFunc
	store     wordStore
	maxUpload int64
	log       *slog.Logger
}

// NewQuizHandler creates a QuizHandler. store may be nil, in which case
// uploaded files are parsed but not kept on disk.
func NewQuizHandler(session quizSession, parse parseFunc, store wordStore, maxUpload int64, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		session:   session,
		parse:     parse,
		store:     store,
		maxUpload: maxUpload,
		log:       logger.With("handler", "quiz"),
	}
}

type termDTO struct {
	ForeignTerm       string `json:"foreign_term"`
	NativeTranslation string `json:"native_translation"`
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

type checkRequest struct {
	Word      termDTO `json:"word"`
	UserInput string  `json:"user_input"`
}

type repeatRequest struct {
	Word termDTO `json:"word"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type checkResponse struct {
	IsCorrect bool `json:"is_correct"`
}

type repeatResponse struct {
	Count int `json:"count"`
}

type resultResponse struct {
	Correct        int       `json:"correct"`
	Incorrect      int       `json:"incorrect"`
	CorrectWords   []string  `json:"correct_words"`
	IncorrectWords []string  `json:"incorrect_words"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Score          float64   `json:"score"`
}

type endQuizResponse struct {
	Message string         `json:"message"`
	Result  resultResponse `json:"result"`
	Warning string         `json:"warning,omitempty"`
}

type statsResponse struct {
	Mode           string    `json:"mode"`
	Correct        int       `json:"correct"`
	Incorrect      int       `json:"incorrect"`
	CorrectWords   []string  `json:"correct_words"`
	IncorrectWords []string  `json:"incorrect_words"`
	StartTime      time.Time `json:"start_time"`
	QueueLength    int       `json:"queue_length"`
	Served         int       `json:"served"`
	TotalWords     int       `json:"total_words"`
}

type uploadResponse struct {
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Files   []string `json:"files"`
}

// SetMode handles POST /set_mode/.
func (h *QuizHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.session.SetMode(req.Mode); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Quiz mode set to %s", req.Mode)})
}

// StartQuiz handles POST /start_quiz/.
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	writeJSON(w, http.StatusOK, messageResponse{Message: "Quiz started"})
}

// EndQuiz handles POST /end_quiz/. A result that could not be persisted is
// still returned, with a warning.
func (h *QuizHandler) EndQuiz(w http.ResponseWriter, r *http.Request) {
	result, err := h.session.EndSession(r.Context())

	resp := endQuizResponse{
		Message: "Quiz ended and results logged",
		Result:  toResultResponse(result),
	}
	if err != nil {
		if !errors.Is(err, domain.ErrPersist) {
			h.handleError(w, r, err)
			return
		}
		resp.Message = "Quiz ended"
		resp.Warning = "results could not be saved"
	}

	writeJSON(w, http.StatusOK, resp)
}

// NextWord handles GET /words/next. It responds with JSON null when there
// is no word to serve.
func (h *QuizHandler) NextWord(w http.ResponseWriter, r *http.Request) {
	term, ok := h.session.NextWord()
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, toTermDTO(term))
}

// Check handles POST /check/.
func (h *QuizHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok := h.session.CheckAnswer(req.Word.toDomain(), req.UserInput)
	writeJSON(w, http.StatusOK, checkResponse{IsCorrect: ok})
}

// Repeat handles POST /repeat/.
func (h *QuizHandler) Repeat(w http.ResponseWriter, r *http.Request) {
	var req repeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count := h.session.IncrementIncorrectRepeat(req.Word.toDomain())
	writeJSON(w, http.StatusOK, repeatResponse{Count: count})
}

// Results handles GET /results/.
func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	st := h.session.Stats()
	writeJSON(w, http.StatusOK, statsResponse{
		Mode:           st.Mode.String(),
		Correct:        st.Correct,
		Incorrect:      st.Incorrect,
		CorrectWords:   st.CorrectWords,
		IncorrectWords: st.IncorrectWords,
		StartTime:      st.StartTime,
		QueueLength:    st.QueueLength,
		Served:         st.Served,
		TotalWords:     st.TotalTerms,
	})
}

// UploadWords handles POST /upload_words/. Every part named "files" is
// parsed as CSV; the combined terms replace the session's word list.
func (h *QuizHandler) UploadWords(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		h.handleError(w, r, domain.NewValidationError("files", "at least one file is required"))
		return
	}

	// Every file must parse before anything is saved or applied, so a
	// rejected request leaves neither the session nor the data dir changed.
	var (
		terms  []domain.Term
		names  = make([]string, 0, len(headers))
		usable = make([]*multipart.FileHeader, 0, len(headers))
	)
	for _, fh := range headers {
		parsed, err := h.readUpload(fh)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		if len(parsed) > 0 {
			usable = append(usable, fh)
		}
		terms = append(terms, parsed...)
		names = append(names, fh.Filename)
	}

	if len(terms) == 0 {
		h.handleError(w, r, domain.NewValidationError("files", "no valid word rows found"))
		return
	}

	if err := h.saveUploads(usable); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.session.UpdateWords(terms)
	h.log.InfoContext(r.Context(), "words uploaded",
		slog.Int("files", len(names)),
		slog.Int("terms", len(terms)),
	)

	writeJSON(w, http.StatusOK, uploadResponse{
		Message: "Words uploaded",
		Count:   len(terms),
		Files:   names,
	})
}

func (h *QuizHandler) readUpload(fh *multipart.FileHeader) ([]domain.Term, error) {
	if h.store != nil {
		if _, err := h.store.CheckName(fh.Filename); err != nil {
			return nil, err
		}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	terms, err := h.parse(f)
	if err != nil {
		return nil, domain.NewValidationError("files", fmt.Sprintf("%s: %v", fh.Filename, err))
	}
	return terms, nil
}

// saveUploads copies already validated uploads into the word store when one
// is configured.
func (h *QuizHandler) saveUploads(headers []*multipart.FileHeader) error {
	if h.store == nil {
		return nil
	}

	for _, fh := range headers {
		if err := h.saveUpload(fh); err != nil {
			return err
		}
	}
	return nil
}

func (h *QuizHandler) saveUpload(fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	if _, err := h.store.Save(fh.Filename, f); err != nil {
		return err
	}
	return nil
}

func (h *QuizHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidMode):
		writeError(w, http.StatusBadRequest, "Invalid mode")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (t termDTO) toDomain() domain.Term {
	return domain.Term{ForeignTerm: t.ForeignTerm, NativeTranslation: t.NativeTranslation}
}

func toTermDTO(t domain.Term) termDTO {
	return termDTO{ForeignTerm: t.ForeignTerm, NativeTranslation: t.NativeTranslation}
}

func toResultResponse(res domain.Result) resultResponse {
	return resultResponse{
		Correct:        res.Correct,
		Incorrect:      res.Incorrect,
		CorrectWords:   nonNil(res.CorrectWords),
		IncorrectWords: nonNil(res.IncorrectWords),
		StartTime:      res.StartTime,
		EndTime:        res.EndTime,
		Score:          res.Score(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
