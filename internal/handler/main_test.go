package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"crm-service/internal/model"
	"crm-service/pkg/config"
	"crm-service/pkg/database"
	"crm-service/prometheus"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

// newMockDB installs a sqlmock-backed GORM handle as the global database
// used by the handlers
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	database.DB = gormDB
	return mock
}

// request builds an echo context and response recorder for a handler call
func request(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return c, rec
}

func leadColumns() []string {
	return []string{"id", "name", "company", "email", "phone", "status", "created_at", "updated_at"}
}

func leadRows(leads ...model.Lead) *sqlmock.Rows {
	rows := sqlmock.NewRows(leadColumns())
	for _, l := range leads {
		var phone any
		if l.Phone != nil {
			phone = *l.Phone
		}
		rows.AddRow(l.ID, l.Name, l.Company, l.Email, phone, l.Status, l.CreatedAt, l.UpdatedAt)
	}
	return rows
}

func interactionColumns() []string {
	return []string{"id", "lead_id", "interaction_type", "notes", "created_at"}
}

func interactionRows(interactions ...model.Interaction) *sqlmock.Rows {
	rows := sqlmock.NewRows(interactionColumns())
	for _, in := range interactions {
		var notes any
		if in.Notes != nil {
			notes = *in.Notes
		}
		rows.AddRow(in.ID, in.LeadID, in.InteractionType, notes, in.CreatedAt)
	}
	return rows
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}
