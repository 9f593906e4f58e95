package entities

// GameContext is the explicit per-chat state: who is playing and what they are doing.
type GameContext struct {
	ChatID         int64
	Player         *Player      // nil until login
	Quiz           *QuizSession // nil when no quiz was started
	Narrator       string       // selected recitation
	QuestionsCount int          // selected quiz length
	AwaitingName   bool         // next text message is a login name
}

// LoggedIn reports whether a player is attached to the context.
func (c *GameContext) LoggedIn() bool {
	return c.Player != nil
}
