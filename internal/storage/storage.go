package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Wilyam390/Task-manager/internal/config"
)

// Adapter скрывает различия между двумя бэкендами: встроенный файл (sqlite)
// и управляемый сервер (postgres). Выше этого пакета никто не ветвится по
// типу базы.
type Adapter struct {
	driver string
	dsn    string
}

func New(cfg config.DatabaseConfig) *Adapter {
	return &Adapter{
		driver: cfg.Driver,
		dsn:    cfg.DSN(),
	}
}

func (a *Adapter) Driver() string {
	return a.driver
}

// Name - человекочитаемое имя бэкенда для /health
func (a *Adapter) Name() string {
	if a.driver == "postgres" {
		return "PostgreSQL"
	}
	return "SQLite"
}

// Connect открывает свежее соединение под одну операцию. Вызывающий обязан
// закрыть его после выполнения запросов (open, use, close - без пула).
func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(a.driver, a.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Rebind переводит позиционные плейсхолдеры `?` в `$N` для postgres.
// Весь SQL в репозитории пишется с `?`, различие синтаксиса прячется здесь.
func (a *Adapter) Rebind(query string) string {
	if a.driver != "postgres" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
