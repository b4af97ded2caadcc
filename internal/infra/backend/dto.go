package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"yuwelongo/internal/domain"
)

// The backend is not consistent about field names across endpoints and
// versions. Each DTO accepts every spelling seen in the wild and is converted
// to a domain type right after decoding.

type levelRef struct {
	ID     int64  `json:"idNivel"`
	Nombre string `json:"nombre"`
}

type levelDTO struct {
	ID          int64  `json:"id"`
	IDNivel     int64  `json:"idNivel"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Orden       int    `json:"orden"`
	Estado      string `json:"estado"`
}

func (d levelDTO) toDomain() domain.Level {
	return domain.Level{
		ID:          firstID(d.IDNivel, d.ID),
		Name:        d.Nombre,
		Order:       d.Orden,
		Description: d.Descripcion,
		Status:      domain.ParseLevelStatus(d.Estado),
	}
}

type questionDTO struct {
	ID                int64     `json:"id"`
	IDPregunta        int64     `json:"idPregunta"`
	PreguntaTexto     string    `json:"preguntaTexto"`
	Opcion1           string    `json:"opcion1"`
	Opcion2           string    `json:"opcion2"`
	Opcion3           string    `json:"opcion3"`
	Opcion4           string    `json:"opcion4"`
	RespuestaCorrecta string    `json:"respuestaCorrecta"`
	RespuestaCoreccta string    `json:"respuestaCoreccta"`
	XPValor           int       `json:"xpValor"`
	ImagenURL         string    `json:"imagenUrl"`
	ImagenURLSnake    string    `json:"imagen_url"`
	AudioURL          string    `json:"audioUrl"`
	AudioURLSnake     string    `json:"audio_url"`
	IDNivel           int64     `json:"idNivel"`
	Nivel             *levelRef `json:"nivel"`
	IDPalabra         int64     `json:"idPalabra"`
	Palabra           *struct {
		ID int64 `json:"idPalabra"`
	} `json:"palabra"`
}

func (d questionDTO) toDomain(requestedLevel int64) domain.Question {
	levelID := d.IDNivel
	if d.Nivel != nil && levelID == 0 {
		levelID = d.Nivel.ID
	}
	if levelID == 0 {
		levelID = requestedLevel
	}
	wordID := d.IDPalabra
	if d.Palabra != nil && wordID == 0 {
		wordID = d.Palabra.ID
	}
	kind, mediaURL := domain.MediaFor(
		firstString(d.ImagenURL, d.ImagenURLSnake),
		firstString(d.AudioURLSnake, d.AudioURL),
	)
	return domain.Question{
		ID:            firstID(d.IDPregunta, d.ID),
		Prompt:        d.PreguntaTexto,
		Options:       [4]string{d.Opcion1, d.Opcion2, d.Opcion3, d.Opcion4},
		CorrectAnswer: firstString(d.RespuestaCorrecta, d.RespuestaCoreccta),
		XP:            d.XPValor,
		LevelID:       levelID,
		WordID:        wordID,
		MediaKind:     kind,
		MediaURL:      mediaURL,
	}
}

// resultDTO is the POST /juegos payload. The first three fields are what the
// backend requires; the rest are accepted and stored when supported.
type resultDTO struct {
	Puntaje            int    `json:"puntaje"`
	IDUsuario          int64  `json:"idUsuario"`
	IDNivel            int64  `json:"idNivel"`
	RespuestasCorrecta int    `json:"respuestasCorrectas"`
	TotalPreguntas     int    `json:"totalPreguntas"`
	FechaJuego         string `json:"fechaJuego,omitempty"`
	IDSesion           string `json:"idSesion,omitempty"`
}

func newResultDTO(r domain.GameResult) resultDTO {
	dto := resultDTO{
		Puntaje:            r.Score,
		IDUsuario:          r.UserID,
		IDNivel:            r.LevelID,
		RespuestasCorrecta: r.CorrectCount,
		TotalPreguntas:     r.TotalCount,
		IDSesion:           r.SessionID,
	}
	if !r.PlayedAt.IsZero() {
		dto.FechaJuego = r.PlayedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

type ackDTO struct {
	ID      int64 `json:"id"`
	IDJuego int64 `json:"idJuego"`
}

func (d ackDTO) toDomain() domain.ResultAck {
	return domain.ResultAck{ID: firstID(d.IDJuego, d.ID)}
}

type rankingDTO struct {
	IDUsuario     int64  `json:"idUsuario"`
	NombreUsuario string `json:"nombreUsuario"`
	Nombre        string `json:"nombre"`
	Puntaje       int    `json:"puntaje"`
	PuntajeTotal  int    `json:"puntajeTotal"`
}

func (d rankingDTO) toDomain() domain.RankingEntry {
	score := d.Puntaje
	if score == 0 {
		score = d.PuntajeTotal
	}
	return domain.RankingEntry{
		UserID:   d.IDUsuario,
		UserName: firstString(d.NombreUsuario, d.Nombre),
		Score:    score,
	}
}

type historyDTO struct {
	ID                 int64     `json:"id"`
	IDJuego            int64     `json:"idJuego"`
	Puntaje            int       `json:"puntaje"`
	RespuestasCorrecta int       `json:"respuestasCorrectas"`
	TotalPreguntas     int       `json:"totalPreguntas"`
	IDNivel            int64     `json:"idNivel"`
	Nivel              *levelRef `json:"nivel"`
	IDSesion           string    `json:"idSesion"`
	FechaJuegoSnake    flexTime  `json:"fecha_juego"`
	FechaJuego         flexTime  `json:"fechaJuego"`
	Fecha              flexTime  `json:"fecha"`
	Date               flexTime  `json:"date"`
	CreatedAt          flexTime  `json:"createdAt"`
}

func (d historyDTO) toDomain() domain.HistoryEntry {
	entry := domain.HistoryEntry{
		ID:           firstID(d.IDJuego, d.ID),
		LevelID:      d.IDNivel,
		Score:        d.Puntaje,
		CorrectCount: d.RespuestasCorrecta,
		TotalCount:   d.TotalPreguntas,
		SessionID:    d.IDSesion,
	}
	if d.Nivel != nil {
		if entry.LevelID == 0 {
			entry.LevelID = d.Nivel.ID
		}
		entry.LevelName = d.Nivel.Nombre
	}
	for _, t := range []flexTime{d.FechaJuegoSnake, d.FechaJuego, d.Fecha, d.Date, d.CreatedAt} {
		if !t.IsZero() {
			entry.PlayedAt = t.Time
			break
		}
	}
	return entry
}

// totalDTO accepts a bare number, a numeric string or an object holding the total.
type totalDTO int

func (t *totalDTO) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		*t = 0
		return nil
	}
	if len(raw) > 0 && raw[0] == '{' {
		var obj struct {
			PuntajeTotal *int `json:"puntajeTotal"`
			Total        *int `json:"total"`
			Puntaje      *int `json:"puntaje"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return err
		}
		for _, v := range []*int{obj.PuntajeTotal, obj.Total, obj.Puntaje} {
			if v != nil {
				*t = totalDTO(*v)
				return nil
			}
		}
		*t = 0
		return nil
	}
	s := strings.Trim(string(raw), `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("total score %q: %w", s, err)
	}
	*t = totalDTO(f)
	return nil
}

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
}

type loginDTO struct {
	Token     string `json:"token"`
	Nombre    string `json:"nombre"`
	Rol       string `json:"rol"`
	ID        int64  `json:"id"`
	IDUsuario int64  `json:"idUsuario"`
}

func (d loginDTO) toDomain() domain.Account {
	return domain.Account{
		UserID: firstID(d.IDUsuario, d.ID),
		Name:   d.Nombre,
		Role:   d.Rol,
		Token:  d.Token,
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Mensaje string `json:"mensaje"`
}

func (e errorBody) message() string {
	return firstString(e.Error, e.Message, e.Mensaje)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// flexTime decodes ISO timestamps, "date time" strings and epoch milliseconds.
type flexTime struct {
	time.Time
}

func (f *flexTime) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] != '"' {
		ms, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return nil
		}
		f.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t
			return nil
		}
	}
	// unparseable dates are shown as unknown rather than failing the whole list
	return nil
}

func firstID(ids ...int64) int64 {
	for _, id := range ids {
		if id != 0 {
			return id
		}
	}
	return 0
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type categoryDTO struct {
	ID          flexID `json:"id"`
	IDCategoria flexID `json:"idCategoria"`
	IDSnake     flexID `json:"id_categoria"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	ImagenURL   string `json:"imagenUrl"`
	ImagenSnake string `json:"imagen_url"`
}

func (d categoryDTO) toDomain() domain.Category {
	return domain.Category{
		ID:          firstID(int64(d.IDCategoria), int64(d.ID), int64(d.IDSnake)),
		Name:        d.Nombre,
		Description: domain.CleanDescription(d.Descripcion),
		ImageURL:    firstString(d.ImagenURL, d.ImagenSnake),
	}
}

type wordDTO struct {
	ID                flexID `json:"id"`
	IDPalabra         flexID `json:"idPalabra"`
	IDSnake           flexID `json:"id_palabra"`
	PalabraNasa       string `json:"palabraNasa"`
	Traduccion        string `json:"traduccion"`
	FraseEjemplo      string `json:"fraseEjemplo"`
	FraseEjemploSnake string `json:"frase_ejemplo"`
	IDCategoria       flexID `json:"idCategoria"`
	IDCategoriaSnake  flexID `json:"id_categoria"`
	Categoria         *struct {
		ID          flexID `json:"id"`
		IDCategoria flexID `json:"idCategoria"`
	} `json:"categoria"`
	ImagenURL  string `json:"imagenUrl"`
	ImagenPath string `json:"imagen_path"`
	AudioURL   string `json:"audioUrl"`
	AudioPath  string `json:"audio_path"`
}

func (d wordDTO) toDomain() domain.Word {
	categoryID := firstID(int64(d.IDCategoria), int64(d.IDCategoriaSnake))
	if categoryID == 0 && d.Categoria != nil {
		categoryID = firstID(int64(d.Categoria.IDCategoria), int64(d.Categoria.ID))
	}
	return domain.Word{
		ID:          firstID(int64(d.IDPalabra), int64(d.ID), int64(d.IDSnake)),
		Nasa:        d.PalabraNasa,
		Translation: d.Traduccion,
		Example:     firstString(d.FraseEjemplo, d.FraseEjemploSnake),
		CategoryID:  categoryID,
		ImageURL:    firstString(d.ImagenURL, d.ImagenPath),
		AudioURL:    firstString(d.AudioURL, d.AudioPath),
	}
}

type favoriteDTO struct {
	ID         int64    `json:"id"`
	IDFavorito int64    `json:"idFavorito"`
	IDUsuario  int64    `json:"idUsuario"`
	Usuario    *userDTO `json:"usuario"`
	IDPalabra  int64    `json:"idPalabra"`
	Palabra    *wordDTO `json:"palabra"`
}

func (d favoriteDTO) toDomain(requestedUser int64) domain.Favorite {
	fav := domain.Favorite{
		ID:     firstID(d.IDFavorito, d.ID),
		UserID: d.IDUsuario,
	}
	if fav.UserID == 0 && d.Usuario != nil {
		fav.UserID = firstID(d.Usuario.IDUsuario, d.Usuario.ID)
	}
	if fav.UserID == 0 {
		fav.UserID = requestedUser
	}
	if d.Palabra != nil {
		fav.Word = d.Palabra.toDomain()
	}
	if fav.Word.ID == 0 {
		fav.Word.ID = d.IDPalabra
	}
	return fav
}

type userDTO struct {
	ID            int64    `json:"id"`
	IDUsuario     int64    `json:"idUsuario"`
	Nombre        string   `json:"nombre"`
	Correo        string   `json:"correo"`
	Rol           string   `json:"rol"`
	Estado        string   `json:"estado"`
	FechaRegistro flexTime `json:"fechaRegistro"`
	FechaSnake    flexTime `json:"fecha_registro"`
}

func (d userDTO) toDomain() domain.User {
	registered := d.FechaRegistro.Time
	if registered.IsZero() {
		registered = d.FechaSnake.Time
	}
	return domain.User{
		ID:           firstID(d.IDUsuario, d.ID),
		Name:         d.Nombre,
		Email:        d.Correo,
		Role:         d.Rol,
		Status:       d.Estado,
		RegisteredAt: registered,
	}
}

type registerRequest struct {
	Nombre     string `json:"nombre"`
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
	Rol        string `json:"rol"`
}

type profileRequest struct {
	IDUsuario  int64  `json:"idUsuario"`
	Nombre     string `json:"nombre,omitempty"`
	Correo     string `json:"correo,omitempty"`
	Contrasena string `json:"contrasena,omitempty"`
}

// flexID decodes ids sent as numbers, numeric strings or null.
type flexID int64

func (f *flexID) UnmarshalJSON(raw []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(raw)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("id %q: %w", s, err)
	}
	*f = flexID(id)
	return nil
}

// oneOrMany decodes either a JSON array or a single object. Search endpoints
// answer with one or the other depending on how many rows matched.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		*o = nil
		return nil
	case raw[0] == '{':
		var one T
		if err := json.Unmarshal(raw, &one); err != nil {
			return err
		}
		*o = oneOrMany[T]{one}
		return nil
	}
	var many []T
	if err := json.Unmarshal(raw, &many); err != nil {
		return err
	}
	*o = many
	return nil
}
