package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Bala-Chandrudu/project/relay"
)

var leaveColumns = []string{
	"id", "user_id", "user_name", "registration_number", "phone",
	"start_date", "end_date", "reason", "section", "year", "created_at",
}

func relayEndpoint(t *testing.T, success bool, message string, hits *atomic.Int32) *relay.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		if success {
			w.Write([]byte(`{"success":true,"message":"` + message + `"}`))
			return
		}
		w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
	}))
	t.Cleanup(srv.Close)
	return relay.NewClient(srv.URL, "pk", "sk")
}

func TestCreatePersistsAfterRelaySuccess(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" =`).
		WillReturnRows(userRow(7, "x", false))
	mock.ExpectQuery(`INSERT INTO "leave_applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	h := NewLeaveHandler(relayEndpoint(t, true, "Email sent successfully!", nil))

	body := `{"phone":"9876543210","reason":"fever","start_date":"2024-06-01","end_date":"2024-06-03"}`
	c, rec := newContext(t, http.MethodPost, "/portal/leave", body)
	signedIn(c, 7, false)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	res := rec.Body.String()
	assert.Equal(t, int64(42), gjson.Get(res, "application.id").Int())
	assert.Equal(t, int64(3), gjson.Get(res, "application.days").Int())
	assert.Equal(t, "John Doe", gjson.Get(res, "application.user_name").String())
	assert.Contains(t, []string{"primary", "secondary"}, gjson.Get(res, "relay_key").String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSkipsStoreOnRelayFailure(t *testing.T) {
	mock := newMockDB(t)
	// only the user lookup: no insert may be attempted
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" =`).
		WillReturnRows(userRow(7, "x", false))

	h := NewLeaveHandler(relayEndpoint(t, false, "invalid access key", nil))

	body := `{"phone":"9876543210","reason":"fever","start_date":"2024-06-01","end_date":"2024-06-03"}`
	c, _ := newContext(t, http.MethodPost, "/portal/leave", body)
	signedIn(c, 7, false)

	err := h.Create(c)
	assert.Equal(t, http.StatusBadGateway, httpCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStoreFailureAfterRelaySuccess(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" =`).
		WillReturnRows(userRow(7, "x", false))
	mock.ExpectQuery(`INSERT INTO "leave_applications"`).
		WillReturnError(assert.AnError)

	h := NewLeaveHandler(relayEndpoint(t, true, "ok", nil))

	body := `{"phone":"9876543210","reason":"fever","start_date":"2024-06-01","end_date":"2024-06-03"}`
	c, _ := newContext(t, http.MethodPost, "/portal/leave", body)
	signedIn(c, 7, false)

	err := h.Create(c)
	assert.Equal(t, http.StatusInternalServerError, httpCode(t, err))
}

func TestCreateValidatesBeforeAnySideEffect(t *testing.T) {
	mock := newMockDB(t)
	var hits atomic.Int32
	h := NewLeaveHandler(relayEndpoint(t, true, "ok", &hits))

	cases := []string{
		`{"reason":"fever","start_date":"2024-06-01","end_date":"2024-06-03"}`,          // no phone
		`{"phone":"9876543210","start_date":"2024-06-01","end_date":"2024-06-03"}`,      // no reason
		`{"phone":"9876543210","reason":"fever","end_date":"2024-06-03"}`,               // no start
		`{"phone":"9876543210","reason":"fever","start_date":"2024-06-01"}`,             // no end
		`{"phone":"9876543210","reason":"fever","start_date":"June 1","end_date":"x"}`,  // bad format
	}
	for _, body := range cases {
		c, _ := newContext(t, http.MethodPost, "/portal/leave", body)
		signedIn(c, 7, false)
		err := h.Create(c)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err), "body: %s", body)
	}
	assert.Equal(t, int32(0), hits.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryAggregatesDayCounts(t *testing.T) {
	mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "leave_applications" WHERE user_id =`).
		WillReturnRows(sqlmock.NewRows(leaveColumns).
			AddRow(2, 7, "John Doe", "REG123456", "9876543210",
				"2024-07-01", "2024-07-05", "travel", "A", "2", now).
			AddRow(1, 7, "John Doe", "REG123456", "9876543210",
				"2024-06-01", "2024-06-02", "fever", "A", "2", now.Add(-24*time.Hour)))

	h := NewLeaveHandler(relayEndpoint(t, true, "ok", nil))
	c, rec := newContext(t, http.MethodGet, "/portal/leave", "")
	signedIn(c, 7, false)

	require.NoError(t, h.History(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	res := rec.Body.String()
	assert.Equal(t, int64(7), gjson.Get(res, "total_days").Int())
	assert.False(t, gjson.Get(res, "empty").Bool())
	assert.Equal(t, int64(2), gjson.Get(res, "applications.#").Int())
	assert.Equal(t, int64(5), gjson.Get(res, "applications.0.days").Int())
	assert.Equal(t, int64(2), gjson.Get(res, "applications.1.days").Int())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryEmptyState(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "leave_applications" WHERE user_id =`).
		WillReturnRows(sqlmock.NewRows(leaveColumns))

	h := NewLeaveHandler(relayEndpoint(t, true, "ok", nil))
	c, rec := newContext(t, http.MethodGet, "/portal/leave", "")
	signedIn(c, 7, false)

	require.NoError(t, h.History(c))

	res := rec.Body.String()
	assert.True(t, gjson.Get(res, "empty").Bool())
	assert.Equal(t, int64(0), gjson.Get(res, "total_days").Int())
	assert.Equal(t, int64(0), gjson.Get(res, "applications.#").Int())
	assert.NoError(t, mock.ExpectationsWereMet())
}
