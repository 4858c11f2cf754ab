package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/logging"
	"github.com/dmitrijs2005/plantkeeper/internal/server/auth"
	"github.com/dmitrijs2005/plantkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
	"github.com/dmitrijs2005/plantkeeper/internal/server/services"
)

const (
	aliceEmail       = "alice@example.com"
	aliceID    int64 = 1001
)

var errBoom = errors.New("boom")

type fakeAuth struct {
	register func(ctx context.Context, email, password string) (string, error)
	login    func(ctx context.Context, email, password string) (string, error)
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (string, error) {
	return f.register(ctx, email, password)
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuth) ResolveUserID(_ context.Context, email string) (int64, error) {
	if email == aliceEmail {
		return aliceID, nil
	}
	return 0, common.ErrorUnauthorized
}

type linkCall struct {
	userID, plantID, potID int64
}

type fakeLinks struct {
	err    error
	calls  []linkCall
	unlink []linkCall
}

func (f *fakeLinks) Link(_ context.Context, userID, plantID, potID int64) error {
	f.calls = append(f.calls, linkCall{userID, plantID, potID})
	return f.err
}

func (f *fakeLinks) Unlink(_ context.Context, userID, plantID, potID int64) error {
	f.unlink = append(f.unlink, linkCall{userID, plantID, potID})
	return f.err
}

type fakePlants struct {
	plants map[int64]models.Plant
	err    error
}

func (f *fakePlants) Create(_ context.Context, userID int64, name string) (*models.Plant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(name) == "" {
		return nil, common.NewValidationError("name", "is required")
	}
	p := models.Plant{ID: int64(len(f.plants) + 1), Name: name, OwnerID: userID}
	f.plants[p.ID] = p
	return &p, nil
}

func (f *fakePlants) List(_ context.Context, userID int64) ([]models.Plant, error) {
	out := []models.Plant{}
	for id := int64(1); id <= int64(len(f.plants)); id++ {
		if p, ok := f.plants[id]; ok && p.OwnerID == userID {
			out = append(out, p)
		}
	}
	return out, f.err
}

func (f *fakePlants) Get(_ context.Context, userID, plantID int64) (*models.Plant, error) {
	p, ok := f.plants[plantID]
	if !ok || p.OwnerID != userID {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (f *fakePlants) Rename(ctx context.Context, userID, plantID int64, name string) (*models.Plant, error) {
	p, err := f.Get(ctx, userID, plantID)
	if err != nil {
		return nil, err
	}
	p.Name = name
	f.plants[plantID] = *p
	return p, nil
}

func (f *fakePlants) Delete(ctx context.Context, userID, plantID int64) error {
	if _, err := f.Get(ctx, userID, plantID); err != nil {
		return err
	}
	delete(f.plants, plantID)
	return nil
}

type fakePots struct {
	views []models.PotView
}

func (f *fakePots) Create(_ context.Context, userID int64) (*models.PotView, error) {
	v := models.PotView{Pot: models.Pot{ID: int64(len(f.views) + 1), OwnerID: userID}}
	f.views = append(f.views, v)
	return &v, nil
}

func (f *fakePots) List(_ context.Context, userID int64) ([]models.PotView, error) {
	return f.views, nil
}

func (f *fakePots) Get(_ context.Context, userID, potID int64) (*models.PotView, error) {
	for _, v := range f.views {
		if v.ID == potID && v.OwnerID == userID {
			return &v, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeMeasurements struct {
	recorded []models.Measurement
}

func (f *fakeMeasurements) Record(_ context.Context, userID, potID int64, m models.Measurement) (*models.Measurement, error) {
	m.ID = int64(len(f.recorded) + 1)
	m.PotID = potID
	f.recorded = append(f.recorded, m)
	return &m, nil
}

func (f *fakeMeasurements) List(_ context.Context, userID, potID int64) ([]models.Measurement, error) {
	return f.recorded, nil
}

type fakePhotos struct{}

func (fakePhotos) RequestUpload(_ context.Context, userID, plantID int64) (*services.PhotoURL, error) {
	return &services.PhotoURL{
		Photo: models.Photo{ID: 7, PlantID: plantID, Status: models.PhotoPending},
		URL:   "http://s3/put",
	}, nil
}

func (fakePhotos) Complete(_ context.Context, userID, plantID, photoID int64) (*models.Photo, error) {
	if photoID != 7 {
		return nil, common.ErrorNotFound
	}
	return &models.Photo{ID: 7, PlantID: plantID, Status: models.PhotoCompleted}, nil
}

func (fakePhotos) List(_ context.Context, userID, plantID int64) ([]services.PhotoURL, error) {
	return []services.PhotoURL{
		{Photo: models.Photo{ID: 7, PlantID: plantID, Status: models.PhotoCompleted}, URL: "http://s3/get"},
		{Photo: models.Photo{ID: 8, PlantID: plantID, Status: models.PhotoPending}},
	}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type testEnv struct {
	srv     *Server
	codec   *auth.TokenCodec
	auth    *fakeAuth
	links   *fakeLinks
	plants  *fakePlants
	pots    *fakePots
	meas    *fakeMeasurements
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		codec: auth.NewTokenCodec([]byte("test-secret"), time.Hour),
		auth: &fakeAuth{
			register: func(context.Context, string, string) (string, error) { return "tok", nil },
			login:    func(context.Context, string, string) (string, error) { return "tok", nil },
		},
		links:   &fakeLinks{},
		plants:  &fakePlants{plants: map[int64]models.Plant{}},
		pots:    &fakePots{},
		meas:    &fakeMeasurements{},
		metrics: metrics.New(),
	}

	env.srv = NewServer("127.0.0.1:0", logging.Nop{}, Deps{
		Auth:         env.auth,
		Links:        env.links,
		Plants:       env.plants,
		Pots:         env.pots,
		Measurements: env.meas,
		Photos:       fakePhotos{},
		Tokens:       env.codec,
		DB:           fakePinger{},
		Metrics:      env.metrics,
	})
	return env
}

func (e *testEnv) token(t *testing.T, subject string) string {
	t.Helper()
	tok, err := e.codec.Issue(subject)
	require.NoError(t, err)
	return tok
}

// do sends a request; a non-empty token is sent as a bearer credential.
func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
