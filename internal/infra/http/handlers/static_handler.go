package handlers

import (
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/xavierca1/ligue-landing/internal/config"
	"github.com/xavierca1/ligue-landing/internal/logger"
)

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
}

const defaultContentType = "application/octet-stream"

// IOError é uma falha de leitura de arquivo estático. Nunca chega ao cliente.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("static %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// StaticHandler serve a landing page a partir de um fs.FS.
//
// Com FallbackToIndex, qualquer arquivo que não puder ser lido (inexistente,
// diretório, permissão, path inválido) responde 200 com a index: é um "soft
// 404" intencional, o site sempre responde. Com Respond404, responde 404.
type StaticHandler struct {
	files    fs.FS
	index    string
	behavior config.NotFoundBehavior
}

func NewStaticHandler(files fs.FS, index string, behavior config.NotFoundBehavior) *StaticHandler {
	return &StaticHandler{files: files, index: index, behavior: behavior}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	name := h.resolve(r.URL.Path)
	data, err := h.read(name)
	if err != nil {
		log.Debug().Err(err).Msg("arquivo estático indisponível")

		if h.behavior == config.Respond404 {
			http.NotFound(w, r)
			return
		}

		name = h.index
		data, err = h.read(name)
		if err != nil {
			log.Error().Err(err).Msg("index da landing page indisponível")
			http.NotFound(w, r)
			return
		}
	}

	w.Header().Set("Content-Type", ContentType(name))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(data)
	}
}

// resolve transforma o path da URL num nome relativo à raiz; path.Clean com
// "/" na frente impede que ".." saia da raiz.
func (h *StaticHandler) resolve(urlPath string) string {
	p := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if p == "" {
		return h.index
	}
	return p
}

func (h *StaticHandler) read(name string) ([]byte, error) {
	data, err := fs.ReadFile(h.files, name)
	if err != nil {
		return nil, &IOError{Path: name, Err: err}
	}
	return data, nil
}

// ContentType maps a file name to its Content-Type by extension.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}
