package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionMenu      = "menu"
	actionPick      = "pick"
	actionPage      = "page"
	actionRange     = "range"
	actionAnswer    = "ans"
	actionStore     = "store"
	actionBuy       = "buy"
	actionChallenge = "chal"
	actionSettings  = "settings"
	actionProfile   = "profile"
	actionNoop      = "noop"
)

// Settings sub-actions.
const (
	settingsMenu     = "menu"
	settingsNarrator = "narrator"
	settingsCount    = "count"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as an integer.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

func buildMenuCallback() string {
	return actionMenu
}

func buildPickCallback() string {
	return actionPick
}

func buildPageCallback(page int) string {
	return callbackData{
		Action: actionPage,
		Params: []string{strconv.Itoa(page)},
	}.encode()
}

func buildRangeCallback(start, end int) string {
	return callbackData{
		Action: actionRange,
		Params: []string{strconv.Itoa(start), strconv.Itoa(end)},
	}.encode()
}

// buildAnswerCallback builds callback data for answering question number of the running quiz.
func buildAnswerCallback(questionNum, answerIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(questionNum), strconv.Itoa(answerIndex)},
	}.encode()
}

func buildStoreCallback() string {
	return actionStore
}

func buildBuyCallback(itemID string) string {
	return callbackData{
		Action: actionBuy,
		Params: []string{itemID},
	}.encode()
}

// buildChallengeCallback opens the challenge list, or starts a challenge when id is given.
func buildChallengeCallback(id ...string) string {
	return callbackData{
		Action: actionChallenge,
		Params: id,
	}.encode()
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionSettings,
		Params: params,
	}.encode()
}

func buildProfileCallback() string {
	return actionProfile
}

func buildNoopCallback() string {
	return actionNoop
}
