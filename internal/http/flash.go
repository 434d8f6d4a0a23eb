package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
)

const flashCookieName = "flash"

// Flash - одноразовое сообщение, переживающее редирект. Kind: success | error.
type Flash struct {
	Kind    string
	Message string
}

// SetFlash кладёт подписанное flash-сообщение в cookie. Подпись секретным
// ключом, чтобы клиент не мог подменить текст.
func SetFlash(w http.ResponseWriter, secret, kind, message string) {
	payload := base64.URLEncoding.EncodeToString([]byte(kind + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    payload + "." + sign(payload, secret),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash читает flash-сообщение и сразу гасит cookie. Сообщение с
// невалидной подписью молча игнорируется.
func PopFlash(w http.ResponseWriter, r *http.Request, secret string) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	// Гасим в любом случае - сообщение показывается один раз
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, signature, ok := strings.Cut(cookie.Value, ".")
	if !ok {
		return nil
	}
	if !hmac.Equal([]byte(signature), []byte(sign(payload, secret))) {
		return nil
	}

	decoded, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(string(decoded), "|")
	if !ok {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
