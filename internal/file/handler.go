package file

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cloudfilestorage/service/internal/response"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling file parts to disk.
const multipartMemory = 32 << 20

// Handler holds HTTP handlers for file endpoints.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates a new file Handler.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Mount registers the file endpoints on r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/search", h.Search)
	r.Get("/download", h.Download)
	r.Post("/upload", h.Upload)
}

// Search godoc
//
//	@Summary		Search files
//	@Description	Lists the caller's files whose object key contains fileName. No match is reported as 404.
//	@Tags			files
//	@Produce		json
//	@Param			userName	query		string	true	"User namespace"
//	@Param			fileName	query		string	true	"Filename fragment"
//	@Success		200			{object}	response.Envelope{data=[]string}
//	@Failure		400			{object}	response.Envelope
//	@Failure		404			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/file-controller/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userName, fragment := q.Get("userName"), q.Get("fileName")

	names, err := h.svc.Search(r.Context(), userName, fragment)
	if err != nil {
		h.fail(w, r, err, "user", userName, "fragment", fragment)
		return
	}

	response.Success(w, r, "Files found", names)
}

// Download godoc
//
//	@Summary		Download file
//	@Description	Returns the raw bytes of {userName}/{fileName}.
//	@Tags			files
//	@Produce		octet-stream
//	@Param			userName	query		string	true	"User namespace"
//	@Param			fileName	query		string	true	"Filename"
//	@Success		200			{file}		binary
//	@Failure		400			{object}	response.Envelope
//	@Failure		404			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/file-controller/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userName, fileName := q.Get("userName"), q.Get("fileName")

	content, err := h.svc.Download(r.Context(), userName, fileName)
	if err != nil {
		h.fail(w, r, err, "user", userName, "file", fileName)
		return
	}

	contentType := content.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": path.Base(content.Name)}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content.Data); err != nil {
		h.log.Debug("download: client went away", "user", userName, "file", fileName, "error", err)
	}
}

// Upload godoc
//
//	@Summary		Upload file
//	@Description	Stores the multipart file under {userName}/{original filename}, replacing any existing object.
//	@Tags			files
//	@Accept			mpfd
//	@Produce		json
//	@Param			userName	query		string	true	"User namespace"
//	@Param			file		formData	file	true	"File to upload"
//	@Success		200			{object}	response.Envelope
//	@Failure		400			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/file-controller/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	body := &recordingBody{ReadCloser: r.Body}
	r.Body = body

	var upload Upload
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if body.err != nil && !errors.As(body.err, &tooLarge) {
			h.fail(w, r, operationFailed("upload", msgUploadFailed, body.err))
			return
		}
		h.log.Debug("upload: unreadable multipart body", "error", err)
	} else {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
		if headers := r.MultipartForm.File["file"]; len(headers) > 0 {
			upload = multipartUpload{header: headers[0]}
		}
	}
	userName := r.FormValue("userName")

	if err := h.svc.Upload(r.Context(), userName, upload); err != nil {
		h.fail(w, r, err, "user", userName)
		return
	}

	response.Success(w, r, "File uploaded successfully", nil)
}

// fail writes the response for a Service error. Operation failures are logged with
// their cause; the client only sees the domain message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, attrs ...any) {
	msg := Message(err)
	switch {
	case errors.Is(err, ErrBadRequest):
		response.BadRequest(w, r, msg)
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, r, msg)
	default:
		attrs = append(attrs, "request_id", chiMiddleware.GetReqID(r.Context()), "error", err)
		h.log.Error("file operation failed", attrs...)
		response.InternalError(w, r, msg)
	}
}

// multipartUpload adapts a multipart file part to Upload.
type multipartUpload struct {
	header *multipart.FileHeader
}

// Name returns the filename as sent by the client. FileHeader.Filename is
// reduced to its base name, which would drop directories from the key.
func (u multipartUpload) Name() string {
	_, params, err := mime.ParseMediaType(u.header.Header.Get("Content-Disposition"))
	if err == nil && params["filename"] != "" {
		return params["filename"]
	}
	return u.header.Filename
}

func (u multipartUpload) ContentType() string { return u.header.Header.Get("Content-Type") }
func (u multipartUpload) Size() int64         { return u.header.Size }

func (u multipartUpload) Open() (io.ReadCloser, error) {
	return u.header.Open()
}

// recordingBody keeps the first transport error seen while reading the request body.
type recordingBody struct {
	io.ReadCloser
	err error
}

func (b *recordingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if err != nil && err != io.EOF && b.err == nil {
		b.err = err
	}
	return n, err
}
