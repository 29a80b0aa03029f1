package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/user/codeshot/pkg/config"
	"github.com/user/codeshot/pkg/ports"
)

const (
	sessionName = "codeshot"
	uploadField = "code_file"

	keyCacheID    = "cache_id"
	keyIsRedirect = "is_redirect"
)

// User-visible notices.
const (
	msgNoFileUploaded = "No file uploaded."
	msgNoFileSelected = "No file selected."
	msgBadEncoding    = "Invalid file encoding. Please upload a UTF-8 encoded text file."
	msgNoImage        = "No image available for download. Please generate an image first."
	msgNoBrowser      = "Browser binaries are missing. Please ensure the capture environment is provisioned."
)

func msgTooLarge() string {
	return fmt.Sprintf("File too large. Maximum size is %d KB.", config.MaxUploadBytes/1024)
}

// handleIndex renders the upload form, or the freshly generated image when
// reached through the post-upload redirect. A plain navigation that still
// carries a live cache id is treated as stale: the store is cleared and the
// empty form shown.
func (s *Server) handleIndex(c echo.Context) error {
	sess := s.session(c)
	ctx := c.Request().Context()

	isRedirect, _ := sess.Values[keyIsRedirect].(bool)
	delete(sess.Values, keyIsRedirect)

	cacheID, _ := sess.Values[keyCacheID].(string)

	data := &indexData{}
	if cacheID != "" {
		if entry, ok := s.store.Get(ctx, cacheID); ok {
			if isRedirect {
				data.Image = entry.Data
				data.Filename = entry.Filename
			} else {
				delete(sess.Values, keyCacheID)
				if err := s.store.Clear(ctx); err != nil {
					return err
				}
				s.log.Debug("Stale session, cache cleared")
			}
		}
	}

	data.Notices = flashStrings(sess)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return c.Render(http.StatusOK, "index.html", data)
}

// handleUpload validates the uploaded file, runs the render pipeline, caches
// the result and redirects to GET / (POST-redirect-GET).
func (s *Server) handleUpload(c echo.Context) error {
	sess := s.session(c)
	ctx := c.Request().Context()

	// A new upload always evicts whatever was cached before.
	delete(sess.Values, keyCacheID)
	delete(sess.Values, keyIsRedirect)
	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	fh, err := c.FormFile(uploadField)
	if err != nil {
		// A part with an empty filename is parsed as a plain form
		// value, not a file.
		if form := c.Request().MultipartForm; form != nil {
			if _, ok := form.Value[uploadField]; ok {
				return s.renderNotice(c, sess, msgNoFileSelected)
			}
		}
		return s.renderNotice(c, sess, msgNoFileUploaded)
	}
	if fh.Filename == "" {
		return s.renderNotice(c, sess, msgNoFileSelected)
	}
	if fh.Size > config.MaxUploadBytes {
		return s.renderNotice(c, sess, msgTooLarge())
	}

	file, err := fh.Open()
	if err != nil {
		return s.renderNotice(c, sess, fmt.Sprintf("Error reading file: %v", err))
	}
	defer file.Close()

	source, err := io.ReadAll(file)
	if err != nil {
		return s.renderNotice(c, sess, fmt.Sprintf("Error reading file: %v", err))
	}
	if !utf8.Valid(source) {
		return s.renderNotice(c, sess, msgBadEncoding)
	}

	s.log.Info("Upload received: %s (%d bytes)", fh.Filename, len(source))

	img, err := s.generator.Generate(ctx, string(source), fh.Filename)
	if err != nil {
		s.log.Error("Render failed: %s", err)
		if errors.Is(err, ports.ErrBrowserUnavailable) {
			return s.renderNotice(c, sess, msgNoBrowser)
		}
		return s.renderNotice(c, sess, capitalized(err.Error()))
	}

	cacheID := uuid.NewString()
	if err := s.store.Put(ctx, cacheID, ports.Entry{Data: img.Data, Filename: img.Filename}); err != nil {
		return err
	}
	s.log.Info("Screenshot cached: %s (%d bytes)", img.Filename, len(img.Data))

	sess.Values[keyCacheID] = cacheID
	sess.Values[keyIsRedirect] = true
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleDownload streams the cached image as a one-time attachment.
func (s *Server) handleDownload(c echo.Context) error {
	sess := s.session(c)
	ctx := c.Request().Context()

	cacheID, _ := sess.Values[keyCacheID].(string)
	entry, ok := s.store.Get(ctx, cacheID)
	if cacheID == "" || !ok {
		sess.AddFlash(msgNoImage)
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if err := s.store.Delete(ctx, cacheID); err != nil {
		return err
	}
	delete(sess.Values, keyCacheID)
	delete(sess.Values, keyIsRedirect)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.log.Info("Screenshot downloaded: %s", entry.Filename)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", entry.Filename))
	return c.Blob(http.StatusOK, "image/png", entry.Data)
}

// renderNotice re-renders the form with a flash-style notice.
func (s *Server) renderNotice(c echo.Context, sess *sessions.Session, msg string) error {
	sess.AddFlash(msg)
	notices := flashStrings(sess)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return c.Render(http.StatusOK, "index.html", &indexData{Notices: notices})
}

func (s *Server) session(c echo.Context) *sessions.Session {
	sess, _ := session.Get(sessionName, c)
	return sess
}

// flashStrings pops pending flash messages as strings.
func flashStrings(sess *sessions.Session) []string {
	flashes := sess.Flashes()
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

// capitalized upper-cases the first byte for user display; wrapped errors
// come through lower-cased.
func capitalized(msg string) string {
	if msg == "" {
		return msg
	}
	if msg[0] >= 'a' && msg[0] <= 'z' {
		return string(msg[0]-'a'+'A') + msg[1:]
	}
	return msg
}
