package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yuwelongo/internal/app"
	"yuwelongo/internal/domain"
	"yuwelongo/internal/infra/memory"
)

func newDictionaryServer(t *testing.T, accounts app.AccountStore) *httptest.Server {
	t.Helper()
	dict := memory.NewStaticDictionary(
		[]domain.Category{
			{ID: 1, Name: "Naturaleza", Description: "Agua y tierra (Creado: 2024-05-01)"},
			{ID: 2, Name: "Familia"},
		},
		[]domain.Word{
			{ID: 1, Nasa: "yu'", Translation: "agua", CategoryID: 1},
			{ID: 2, Nasa: "kiwe", Translation: "territorio", CategoryID: 1},
			{ID: 3, Nasa: "nasa", Translation: "gente", CategoryID: 2},
		},
	)
	var accountService *app.AccountService
	if accounts != nil {
		accountService = app.NewAccountService(accounts)
	}

	mux := http.NewServeMux()
	NewDictionaryHandler(
		app.NewDictionaryService(dict),
		app.NewFavoritesService(memory.NewFavoriteStore(dict)),
		accountService,
		nil,
	).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func sendJSON(t *testing.T, method, url string, body, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestCategoryRoutes(t *testing.T) {
	server := newDictionaryServer(t, nil)

	var categories []domain.Category
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/categories", &categories))
	require.Len(t, categories, 2)
	assert.Equal(t, "Familia", categories[0].Name)

	var page app.CategoryPage
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/categories/1", &page))
	assert.Equal(t, "Agua y tierra", page.Category.Description)
	require.Len(t, page.Words, 2)
	assert.Equal(t, "kiwe", page.Words[0].Nasa)

	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/categories/9", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/categories/x", nil))
}

func TestWordSearchRoute(t *testing.T) {
	server := newDictionaryServer(t, nil)

	var words []domain.Word
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/words?by=translation&q=AGUA", &words))
	require.Len(t, words, 1)
	assert.Equal(t, "yu'", words[0].Nasa)

	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/words", &words))
	assert.Len(t, words, 3)

	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/words?q=zzz", &words))
	assert.NotNil(t, words)
	assert.Empty(t, words)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/words?by=color", nil))
}

func TestFavoriteRoutes(t *testing.T) {
	server := newDictionaryServer(t, nil)

	var fav domain.Favorite
	require.Equal(t, http.StatusCreated, sendJSON(t, http.MethodPost, server.URL+"/users/7/favorites", addFavoriteRequest{WordID: 2}, &fav))
	assert.Equal(t, "territorio", fav.Word.Translation)

	var again domain.Favorite
	require.Equal(t, http.StatusCreated, sendJSON(t, http.MethodPost, server.URL+"/users/7/favorites", addFavoriteRequest{WordID: 2}, &again))
	assert.Equal(t, fav.ID, again.ID, "saving twice keeps one favorite")

	var missing errorPayload
	assert.Equal(t, http.StatusNotFound, sendJSON(t, http.MethodPost, server.URL+"/users/7/favorites", addFavoriteRequest{WordID: 99}, &missing))
	assert.Equal(t, http.StatusBadRequest, sendJSON(t, http.MethodPost, server.URL+"/users/7/favorites", addFavoriteRequest{}, &missing))
	assert.Contains(t, missing.Message, "word ids required")

	var favs []domain.Favorite
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/users/7/favorites?q=kiw", &favs))
	require.Len(t, favs, 1)
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/users/7/favorites?q=agua", &favs))
	assert.Empty(t, favs)

	assert.Equal(t, http.StatusNoContent, sendJSON(t, http.MethodDelete, fmt.Sprintf("%s/favorites/%d", server.URL, fav.ID), nil, nil))
	assert.Equal(t, http.StatusNotFound, sendJSON(t, http.MethodDelete, fmt.Sprintf("%s/favorites/%d", server.URL, fav.ID), nil, nil))
}

func TestAccountRoutesNeedAccountStore(t *testing.T) {
	server := newDictionaryServer(t, nil)
	reg := domain.Registration{Name: "Ana", Email: "ana@example.com", Password: "secreto"}
	assert.Equal(t, http.StatusNotFound, sendJSON(t, http.MethodPost, server.URL+"/register", reg, nil))
}

func TestAccountRoutes(t *testing.T) {
	accounts := &fakeAccounts{users: map[int64]domain.User{}}
	server := newDictionaryServer(t, accounts)

	var user domain.User
	reg := domain.Registration{Name: " Ana ", Email: "ana@example.com", Password: "secreto"}
	require.Equal(t, http.StatusCreated, sendJSON(t, http.MethodPost, server.URL+"/register", reg, &user))
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, domain.RolePlayer, user.Role)

	var failure errorPayload
	assert.Equal(t, http.StatusConflict, sendJSON(t, http.MethodPost, server.URL+"/register", reg, &failure))
	assert.Contains(t, failure.Message, "ana@example.com")

	short := domain.Registration{Name: "Luz", Email: "luz@example.com", Password: "123"}
	assert.Equal(t, http.StatusBadRequest, sendJSON(t, http.MethodPost, server.URL+"/register", short, &failure))
	assert.Contains(t, failure.Message, "password")

	profileURL := fmt.Sprintf("%s/users/%d/profile", server.URL, user.ID)
	require.Equal(t, http.StatusOK, sendJSON(t, http.MethodPut, profileURL, domain.ProfileUpdate{Name: "Ana María"}, &user))
	assert.Equal(t, "Ana María", user.Name)

	var fetched domain.User
	require.Equal(t, http.StatusOK, getJSON(t, profileURL, &fetched))
	assert.Equal(t, "Ana María", fetched.Name)
	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/users/99/profile", nil))
}

type fakeAccounts struct {
	users map[int64]domain.User
}

func (f *fakeAccounts) Register(_ context.Context, reg domain.Registration) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == reg.Email {
			return domain.User{}, fmt.Errorf("%w: %s already registered", domain.ErrConflict, reg.Email)
		}
	}
	u := domain.User{ID: int64(len(f.users) + 1), Name: reg.Name, Email: reg.Email, Role: domain.RolePlayer}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeAccounts) User(_ context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeAccounts) UpdateProfile(_ context.Context, update domain.ProfileUpdate) (domain.User, error) {
	u, ok := f.users[update.ID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	if update.Name != "" {
		u.Name = update.Name
	}
	if update.Email != "" {
		u.Email = update.Email
	}
	f.users[u.ID] = u
	return u, nil
}
