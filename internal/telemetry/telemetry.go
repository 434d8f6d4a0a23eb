package telemetry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultEndpoint - приёмник телеметрии облачного провайдера
const DefaultEndpoint = "https://dc.services.visualstudio.com/v2/track"

// Tracker отправляет события телеметрии. Отключённая телеметрия - это
// no-op реализация, а не условная проверка в каждом обработчике.
type Tracker interface {
	TrackEvent(name string, properties map[string]string)
}

// Noop используется, когда ключ инструментирования не задан
type Noop struct{}

func (Noop) TrackEvent(name string, properties map[string]string) {}

// New возвращает трекер по ключу: пустой ключ - заглушка
func New(key string, log *logrus.Logger) Tracker {
	if key == "" {
		return Noop{}
	}
	return NewKeyedTracker(key, DefaultEndpoint, log)
}

// KeyedTracker шлёт события в облачный приёмник. Отправка асинхронная и
// не может ни заблокировать, ни завалить обработку запроса.
type KeyedTracker struct {
	key      string
	endpoint string
	client   *http.Client
	log      *logrus.Logger
}

func NewKeyedTracker(key, endpoint string, log *logrus.Logger) *KeyedTracker {
	return &KeyedTracker{
		key:      key,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
		log:      log,
	}
}

type envelope struct {
	Name       string            `json:"name"`
	Time       string            `json:"time"`
	Key        string            `json:"iKey"`
	Properties map[string]string `json:"properties,omitempty"`
}

func (t *KeyedTracker) TrackEvent(name string, properties map[string]string) {
	go t.send(name, properties)
}

func (t *KeyedTracker) send(name string, properties map[string]string) {
	body, err := json.Marshal(envelope{
		Name:       name,
		Time:       time.Now().UTC().Format(time.RFC3339Nano),
		Key:        t.key,
		Properties: properties,
	})
	if err != nil {
		t.log.WithError(err).Debug("telemetry event marshal failed")
		return
	}

	resp, err := t.client.Post(t.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		t.log.WithError(err).Debug("telemetry event send failed")
		return
	}
	resp.Body.Close()
}
