package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"yuwelongo/internal/app"
	"yuwelongo/internal/domain"
)

// DictionaryHandler serves the word dictionary, saved favorites and, when an
// account store is configured, registration and profiles.
type DictionaryHandler struct {
	dictionary *app.DictionaryService
	favorites  *app.FavoritesService
	accounts   *app.AccountService
	withToken  TokenContext
}

func NewDictionaryHandler(dictionary *app.DictionaryService, favorites *app.FavoritesService, accounts *app.AccountService, withToken TokenContext) *DictionaryHandler {
	return &DictionaryHandler{dictionary: dictionary, favorites: favorites, accounts: accounts, withToken: withToken}
}

func (h *DictionaryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.categories)
	mux.HandleFunc("GET /categories/{categoryId}", h.category)
	mux.HandleFunc("GET /words", h.words)
	mux.HandleFunc("GET /users/{userId}/favorites", h.listFavorites)
	mux.HandleFunc("POST /users/{userId}/favorites", h.addFavorite)
	mux.HandleFunc("DELETE /favorites/{favoriteId}", h.removeFavorite)
	if h.accounts == nil {
		return
	}
	mux.HandleFunc("POST /register", h.register)
	mux.HandleFunc("GET /users/{userId}/profile", h.profile)
	mux.HandleFunc("PUT /users/{userId}/profile", h.updateProfile)
}

type addFavoriteRequest struct {
	WordID int64 `json:"wordId"`
}

func (h *DictionaryHandler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.dictionary.Categories(requestContext(r, h.withToken))
	if categories == nil && err == nil {
		categories = []domain.Category{}
	}
	respond(w, r, categories, err)
}

func (h *DictionaryHandler) category(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}
	page, err := h.dictionary.Category(requestContext(r, h.withToken), id)
	respond(w, r, page, err)
}

// words lists the dictionary, filtered by q on the field named by "by"
// (nasa or translation).
func (h *DictionaryHandler) words(w http.ResponseWriter, r *http.Request) {
	field, ok := domain.ParseWordField(r.URL.Query().Get("by"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid by"})
		return
	}
	words, err := h.dictionary.Search(requestContext(r, h.withToken), field, r.URL.Query().Get("q"))
	respond(w, r, words, err)
}

func (h *DictionaryHandler) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	favs, err := h.favorites.List(requestContext(r, h.withToken), userID, r.URL.Query().Get("q"))
	respond(w, r, favs, err)
}

func (h *DictionaryHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	var req addFavoriteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fav, err := h.favorites.Add(requestContext(r, h.withToken), userID, req.WordID)
	respondStatus(w, r, http.StatusCreated, fav, err)
}

func (h *DictionaryHandler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "favoriteId")
	if !ok {
		return
	}
	if err := h.favorites.Remove(requestContext(r, h.withToken), id); err != nil {
		respond(w, r, nil, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DictionaryHandler) register(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if !decodeBody(w, r, &reg) {
		return
	}
	user, err := h.accounts.Register(r.Context(), reg)
	respondStatus(w, r, http.StatusCreated, user, err)
}

func (h *DictionaryHandler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	user, err := h.accounts.Profile(requestContext(r, h.withToken), userID)
	respond(w, r, user, err)
}

func (h *DictionaryHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	var update domain.ProfileUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	update.ID = userID
	user, err := h.accounts.UpdateProfile(requestContext(r, h.withToken), update)
	respond(w, r, user, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: fmt.Sprintf("invalid body: %v", err)})
		return false
	}
	return true
}
