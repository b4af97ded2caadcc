package app

// GameFactory holds the collaborators shared by every game and builds one
// Controller per player connection.
type GameFactory struct {
	Catalog   *LevelCatalog
	Questions *QuestionProvider
	Results   *ResultSubmitter // optional
	Sessions  SessionRepository
	Config    GameConfig
}

// NewGame returns a fresh controller whose session slot is scoped to clientKey.
func (f *GameFactory) NewGame(clientKey string, player Player) *Controller {
	return NewController(GameDeps{
		Catalog:   f.Catalog,
		Questions: f.Questions,
		Results:   f.Results,
		Sessions:  NewSessionIDs(f.Sessions, clientKey),
	}, player, f.Config)
}
