package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yuwelongo/internal/domain"
)

func TestCategoriesNormalizeFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categorias", r.URL.Path)
		w.Write([]byte(`[
			{"idCategoria": "3", "nombre": "Animales", "descripcion": "Fauna (Creado: 2024-05-01)", "imagenUrl": "a.png"},
			{"id_categoria": 4, "nombre": "Familia", "imagen_url": "f.png"}
		]`))
	})

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{ID: 3, Name: "Animales", Description: "Fauna", ImageURL: "a.png"},
		{ID: 4, Name: "Familia", ImageURL: "f.png"},
	}, categories)
}

func TestSearchCategoriesAcceptsSingleObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Cielo y tierra", r.URL.Query().Get("nombre"))
		w.Write([]byte(`{"id": 9, "nombre": "Cielo y tierra"}`))
	})

	found, err := client.SearchCategories(context.Background(), "Cielo y tierra")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(9), found[0].ID)
}

func TestWordsNormalizeFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/palabras", r.URL.Path)
		w.Write([]byte(`[
			{"idPalabra": 1, "palabraNasa": "kiwe", "traduccion": "territorio", "fraseEjemplo": "kiwe uma",
			 "idCategoria": 2, "imagenUrl": "k.png", "audioUrl": "k.mp3"},
			{"id": 2, "palabraNasa": "yu'", "traduccion": "agua", "frase_ejemplo": "yu' ew",
			 "categoria": {"idCategoria": 5}, "imagen_path": "y.png", "audio_path": "y.mp3"}
		]`))
	})

	words, err := client.Words(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Word{
		{ID: 1, Nasa: "kiwe", Translation: "territorio", Example: "kiwe uma", CategoryID: 2, ImageURL: "k.png", AudioURL: "k.mp3"},
		{ID: 2, Nasa: "yu'", Translation: "agua", Example: "yu' ew", CategoryID: 5, ImageURL: "y.png", AudioURL: "y.mp3"},
	}, words)
}

func TestSearchWordsUsesFieldParameter(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if r.URL.Query().Get("traduccion") == "nada" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[{"idPalabra": 1, "palabraNasa": "yu'", "traduccion": "agua"}]`))
	})

	words, err := client.SearchWords(context.Background(), domain.WordFieldTranslation, "agua")
	require.NoError(t, err)
	assert.Equal(t, "traduccion=agua", gotQuery)
	require.Len(t, words, 1)

	_, err = client.SearchWords(context.Background(), domain.WordFieldNasa, "yu'")
	require.NoError(t, err)
	assert.Equal(t, "palabraNasa=yu%27", gotQuery)

	words, err = client.SearchWords(context.Background(), domain.WordFieldTranslation, "nada")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestFavorites(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/favoritos/usuario/4":
			w.Write([]byte(`[{"idFavorito": 70, "palabra": {"idPalabra": 1, "palabraNasa": "kiwe", "traduccion": "territorio"}}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/favoritos/usuario/5":
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost && r.URL.Path == "/api/favoritos":
			assert.Equal(t, "4", r.URL.Query().Get("idUsuario"))
			assert.Equal(t, "2", r.URL.Query().Get("idPalabra"))
			w.Write([]byte(`{"idFavorito": 71, "usuario": {"idUsuario": 4}}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/favoritos/70":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL)
			w.WriteHeader(http.StatusTeapot)
		}
	})
	ctx := context.Background()

	favs, err := client.Favorites(ctx, 4)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, domain.Favorite{ID: 70, UserID: 4, Word: domain.Word{ID: 1, Nasa: "kiwe", Translation: "territorio"}}, favs[0])

	none, err := client.Favorites(ctx, 5)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	added, err := client.AddFavorite(ctx, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Favorite{ID: 71, UserID: 4, Word: domain.Word{ID: 2}}, added)

	require.NoError(t, client.RemoveFavorite(ctx, 70))
}

func TestRegister(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/usuarios", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "USUARIO", body["rol"])
		switch body["correo"] {
		case "ana@example.com":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"idUsuario": 12, "nombre": "Ana", "correo": "ana@example.com", "rol": "USUARIO", "fechaRegistro": "2025-06-01T10:00:00"}`))
		case "taken@example.com":
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error": "El correo electrónico ya está registrado."}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "correo inválido"}`))
		}
	})
	ctx := context.Background()

	user, err := client.Register(ctx, domain.Registration{Name: "Ana", Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), user.ID)
	assert.Equal(t, domain.RolePlayer, user.Role)
	assert.Equal(t, 2025, user.RegisteredAt.Year())

	_, err = client.Register(ctx, domain.Registration{Name: "B", Email: "taken@example.com", Password: "x"})
	require.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)
	assert.Contains(t, err.Error(), "ya está registrado")

	_, err = client.Register(ctx, domain.Registration{Name: "C", Email: "bad", Password: "x"})
	require.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
	assert.False(t, errors.Is(err, domain.ErrServiceUnavailable))
}

func TestUserProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "/api/usuarios/12", r.URL.Path)
			w.Write([]byte(`{"id": 12, "nombre": "Ana", "correo": "ana@example.com", "estado": "activo"}`))
		case http.MethodPut:
			assert.Equal(t, "/api/usuarios/", r.URL.Path)
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(12), body["idUsuario"])
			assert.Equal(t, "Ana María", body["nombre"])
			_, hasPassword := body["contrasena"]
			assert.False(t, hasPassword)
			w.Write([]byte(`{"idUsuario": 12, "nombre": "Ana María", "correo": "ana@example.com"}`))
		}
	})
	ctx := context.Background()

	user, err := client.User(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, "activo", user.Status)

	user, err = client.UpdateProfile(ctx, domain.ProfileUpdate{ID: 12, Name: "Ana María"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", user.Name)
}
