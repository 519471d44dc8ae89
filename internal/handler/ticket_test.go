package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeycc/festival-booking/internal/model"
	"github.com/jeycc/festival-booking/internal/queue"
	"github.com/jeycc/festival-booking/internal/repository"
)

// fakeTickets is an in-memory TicketStore with the same uniqueness
// semantics as the real repository.
type fakeTickets struct {
	m map[string]model.Ticket
}

func (f *fakeTickets) Create(_ context.Context, t *model.Ticket) error {
	for _, ex := range f.m {
		if ex.MovieID == t.MovieID && ex.SeatNumber == t.SeatNumber {
			return repository.ErrSeatTaken
		}
	}
	t.TicketID = repository.SequentialID("t", int64(len(f.m)))
	if t.Snacks == nil {
		t.Snacks = []string{}
	}
	f.m[t.TicketID] = *t
	return nil
}

func (f *fakeTickets) GetByID(_ context.Context, id string) (*model.Ticket, error) {
	t, ok := f.m[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	return &t, nil
}

func (f *fakeTickets) List(_ context.Context) ([]model.Ticket, error) {
	out := make([]model.Ticket, 0, len(f.m))
	for _, t := range f.m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TicketID < out[j].TicketID })
	return out, nil
}

func (f *fakeTickets) SeatTaken(_ context.Context, movieID, seat, exclude string) (bool, error) {
	for id, t := range f.m {
		if id != exclude && t.MovieID == movieID && t.SeatNumber == seat {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTickets) UpdateMovieSeat(_ context.Context, id, movieID, seat string) error {
	t, ok := f.m[id]
	if !ok {
		return repository.ErrTicketNotFound
	}
	for other, ex := range f.m {
		if other != id && ex.MovieID == movieID && ex.SeatNumber == seat {
			return repository.ErrSeatTaken
		}
	}
	t.MovieID = movieID
	t.SeatNumber = seat
	f.m[id] = t
	return nil
}

func (f *fakeTickets) Delete(_ context.Context, id string) error {
	delete(f.m, id)
	return nil
}

type fakeClients struct {
	m map[string]model.Client
}

func (f *fakeClients) GetByID(_ context.Context, id string) (*model.Client, error) {
	c, ok := f.m[id]
	if !ok {
		return nil, repository.ErrClientNotFound
	}
	return &c, nil
}

type fakeMovies struct {
	movies []model.Movie
}

func (f *fakeMovies) GetByID(_ context.Context, id string) (*model.Movie, error) {
	for _, m := range f.movies {
		if m.MovieID == id {
			return &m, nil
		}
	}
	return nil, repository.ErrMovieNotFound
}

func (f *fakeMovies) GetByTitle(_ context.Context, title string) (*model.Movie, error) {
	for _, m := range f.movies {
		if m.Title == title {
			return &m, nil
		}
	}
	return nil, repository.ErrMovieNotFound
}

func testPolicy() model.TransportPolicy {
	return model.TransportPolicy{
		Allowed:     []string{"Carpool", "PrivateBus", "Cinematdour"},
		OrgRequired: []string{"Cinematdour", "PrivateBus"},
	}
}

func newTestHandler() (*TicketHandler, *fakeTickets, *fakeClients, *fakeMovies) {
	ft := &fakeTickets{m: map[string]model.Ticket{}}
	fc := &fakeClients{m: map[string]model.Client{
		"c1": {ClientID: "c1", FirstName: "Amina", LastName: "Ben Salah", Phone: "111", Email: "amina@example.com"},
	}}
	fm := &fakeMovies{movies: []model.Movie{
		{MovieID: "m1", Title: "Hanami", Director: "Denise Fernandes", Year: 2024, Genre: "Drama"},
		{MovieID: "m2", Title: "Ashkal", Director: "Youssef Chebbi", Year: 2022, Genre: "Thriller"},
	}}
	return NewTicketHandler(ft, fc, fm, testPolicy()), ft, fc, fm
}

func doRequest(t *testing.T, h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, h(c))
	return rec
}

func bookTicket(t *testing.T, h *TicketHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, h.Create, http.MethodPost, "/app/tickets", body, nil)
}

func TestCreateTicket(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedSubstr string
		absentSubstr   string
	}{
		{
			name:           "carpool booking omits organization name",
			body:           `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"seat_number":"A1"`,
			absentSubstr:   "organization_name",
		},
		{
			name:           "no transport sentinel accepted",
			body:           `{"client_id":"c1","movie_name":"Hanami","seat_number":"B7","transport":"No transport"}`,
			expectedStatus: http.StatusCreated,
			absentSubstr:   "organization_name",
		},
		{
			name:           "cinematdour requires organization name",
			body:           `{"client_id":"c1","movie_name":"Hanami","seat_number":"C3","transport":"Cinematdour"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "Organization name is required",
		},
		{
			name:           "cinematdour with organization name",
			body:           `{"client_id":"c1","movie_name":"Hanami","seat_number":"C3","transport":"Cinematdour","organization_name":"VERMEG"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"organization_name":"VERMEG"`,
		},
		{
			name:           "missing required fields",
			body:           `{"client_id":"c1","movie_name":"Hanami"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "required in the request body",
		},
		{
			name:           "transport outside the whitelist",
			body:           `{"client_id":"c1","movie_name":"Hanami","seat_number":"A2","transport":"Helicopter"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "Invalid transport type",
		},
		{
			name:           "unknown client",
			body:           `{"client_id":"nope","movie_name":"Hanami","seat_number":"A2","transport":"Carpool"}`,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: "Client not found.",
		},
		{
			name:           "unknown movie",
			body:           `{"client_id":"c1","movie_name":"Missing Film","seat_number":"A2","transport":"Carpool"}`,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: "Movie not found.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, ft, _, _ := newTestHandler()
			rec := bookTicket(t, h, tc.body)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedSubstr != "" {
				assert.Contains(t, rec.Body.String(), tc.expectedSubstr)
			}
			if tc.absentSubstr != "" {
				assert.NotContains(t, rec.Body.String(), tc.absentSubstr)
			}
			if tc.expectedStatus != http.StatusCreated {
				assert.Empty(t, ft.m, "failed booking must not persist a ticket")
			}
		})
	}
}

func TestCreateTicketSeatConflict(t *testing.T) {
	h, ft, _, _ := newTestHandler()
	body := `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool"}`

	rec := bookTicket(t, h, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, ft.m, 1)

	// Same movie and seat again: rejected, no new row.
	rec = bookTicket(t, h, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "A ticket with the same movie and seat already exists.")
	assert.Len(t, ft.m, 1)

	// Same seat on a different movie is fine.
	rec = bookTicket(t, h, `{"client_id":"c1","movie_name":"Ashkal","seat_number":"A1","transport":"Carpool"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, ft.m, 2)
}

func TestCreateTicketStoresOrgOnlyWhenRequired(t *testing.T) {
	h, ft, _, _ := newTestHandler()

	// organization_name submitted with a transport that does not need
	// it must not be persisted.
	rec := bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool","organization_name":"VERMEG"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	stored := ft.m["t1"]
	assert.Nil(t, stored.OrganizationName)

	rec = bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A2","transport":"PrivateBus","organization_name":"VERMEG"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	stored = ft.m["t2"]
	require.NotNil(t, stored.OrganizationName)
	assert.Equal(t, "VERMEG", *stored.OrganizationName)
}

func TestCreateTicketPublishesEvent(t *testing.T) {
	h, _, _, _ := newTestHandler()
	events := make(chan queue.TicketBookedEvent, 1)
	h.Publish = func(_ context.Context, ev queue.TicketBookedEvent) error {
		events <- ev
		return nil
	}

	rec := bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool","snacks":["bambalouni"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	select {
	case ev := <-events:
		assert.Equal(t, "t1", ev.TicketID)
		assert.Equal(t, "c1", ev.ClientID)
		assert.Equal(t, "Hanami", ev.MovieTitle)
		assert.Equal(t, "A1", ev.SeatNumber)
		assert.Equal(t, []string{"bambalouni"}, ev.Snacks)
	case <-time.After(time.Second):
		t.Fatal("expected a ticket.booked event")
	}
}

func TestGetTicket(t *testing.T) {
	h, _, _, _ := newTestHandler()
	rec := bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h.Get, http.MethodGet, "/app/tickets/t1", "", map[string]string{"ticketId": "t1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ticket_id":"t1"`)

	rec = doRequest(t, h.Get, http.MethodGet, "/app/tickets/t99", "", map[string]string{"ticketId": "t99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ticket not found.")
}

func TestListTickets(t *testing.T) {
	h, _, _, _ := newTestHandler()

	rec := doRequest(t, h.List, http.MethodGet, "/app/tickets", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	require.Equal(t, http.StatusCreated, bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool"}`).Code)
	require.Equal(t, http.StatusCreated, bookTicket(t, h, `{"client_id":"c1","movie_name":"Ashkal","seat_number":"B2","transport":"No transport"}`).Code)

	rec = doRequest(t, h.List, http.MethodGet, "/app/tickets", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var tickets []model.Ticket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tickets))
	assert.Len(t, tickets, 2)
}

func TestUpdateTicket(t *testing.T) {
	h, ft, _, _ := newTestHandler()
	require.Equal(t, http.StatusCreated, bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool","snacks":["chips"]}`).Code)

	rec := doRequest(t, h.Update, http.MethodPut, "/app/tickets/t1",
		`{"movie_name":"Ashkal","seat_number":"B2"}`, map[string]string{"ticketId": "t1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"movie_title":"Ashkal"`)
	assert.Contains(t, rec.Body.String(), `"seat_number":"B2"`)

	// Only movie and seat change; everything else survives the update.
	stored := ft.m["t1"]
	assert.Equal(t, "m2", stored.MovieID)
	assert.Equal(t, "c1", stored.ClientID)
	assert.Equal(t, "Carpool", stored.Transport)
	assert.Equal(t, []string{"chips"}, stored.Snacks)
}

func TestUpdateTicketValidation(t *testing.T) {
	h, ft, _, _ := newTestHandler()
	require.Equal(t, http.StatusCreated, bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool"}`).Code)

	tests := []struct {
		name           string
		ticketID       string
		body           string
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "missing fields",
			ticketID:       "t1",
			body:           `{"movie_name":"Ashkal"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "Movie name and seat number are required",
		},
		{
			name:           "unknown ticket",
			ticketID:       "t42",
			body:           `{"movie_name":"Ashkal","seat_number":"B2"}`,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: "Ticket not found.",
		},
		{
			// Unlike create, a missing movie is a bad request here.
			name:           "unknown movie",
			ticketID:       "t1",
			body:           `{"movie_name":"Missing Film","seat_number":"B2"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "Movie not found.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, h.Update, http.MethodPut, "/app/tickets/"+tc.ticketID,
				tc.body, map[string]string{"ticketId": tc.ticketID})
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedSubstr)
		})
	}

	// The rejected updates must leave the ticket untouched.
	stored := ft.m["t1"]
	assert.Equal(t, "m1", stored.MovieID)
	assert.Equal(t, "A1", stored.SeatNumber)
}

func TestUpdateTicketSeatConflict(t *testing.T) {
	h, ft, _, _ := newTestHandler()
	require.Equal(t, http.StatusCreated, bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool"}`).Code)
	require.Equal(t, http.StatusCreated, bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A2","transport":"Carpool"}`).Code)

	// Moving t2 onto t1's seat is a conflict.
	rec := doRequest(t, h.Update, http.MethodPut, "/app/tickets/t2",
		`{"movie_name":"Hanami","seat_number":"A1"}`, map[string]string{"ticketId": "t2"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "A2", ft.m["t2"].SeatNumber)

	// Re-submitting a ticket's own seat is not a conflict.
	rec = doRequest(t, h.Update, http.MethodPut, "/app/tickets/t2",
		`{"movie_name":"Hanami","seat_number":"A2"}`, map[string]string{"ticketId": "t2"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteTicket(t *testing.T) {
	h, _, _, _ := newTestHandler()
	require.Equal(t, http.StatusCreated, bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool"}`).Code)

	rec := doRequest(t, h.Delete, http.MethodDelete, "/app/tickets/t1", "", map[string]string{"ticketId": "t1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ticket deleted successfully.")

	// Reading a deleted ticket is a 404, as is deleting it again.
	rec = doRequest(t, h.Get, http.MethodGet, "/app/tickets/t1", "", map[string]string{"ticketId": "t1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(t, h.Delete, http.MethodDelete, "/app/tickets/t1", "", map[string]string{"ticketId": "t1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTicketClient(t *testing.T) {
	h, _, fc, fm := newTestHandler()
	require.Equal(t, http.StatusCreated, bookTicket(t, h, `{"client_id":"c1","movie_name":"Hanami","seat_number":"A1","transport":"Carpool"}`).Code)

	rec := doRequest(t, h.GetClient, http.MethodGet, "/app/tickets/t1/client", "", map[string]string{"ticketId": "t1"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Ticket model.TicketView `json:"ticket"`
		Client model.Client     `json:"client"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "t1", resp.Ticket.TicketID)
	assert.Equal(t, "Hanami", resp.Ticket.MovieTitle)
	assert.Equal(t, "c1", resp.Client.ClientID)

	rec = doRequest(t, h.GetClient, http.MethodGet, "/app/tickets/t9/client", "", map[string]string{"ticketId": "t9"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ticket not found.")

	// Client deleted after booking: the ticket dangles.
	delete(fc.m, "c1")
	rec = doRequest(t, h.GetClient, http.MethodGet, "/app/tickets/t1/client", "", map[string]string{"ticketId": "t1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Client not found for this ticket.")

	// Movie deleted after booking, checked after the client stage.
	fc.m["c1"] = model.Client{ClientID: "c1"}
	fm.movies = fm.movies[1:]
	rec = doRequest(t, h.GetClient, http.MethodGet, "/app/tickets/t1/client", "", map[string]string{"ticketId": "t1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Movie not found for this ticket.")
}
