package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/service"
)

const (
	pagesPerRow = 5
	// maxPickerButtons keeps the page picker under Telegram's keyboard limit.
	maxPickerButtons = 90
)

// buildMenuKeyboard builds the main menu keyboard.
func buildMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 ابدأ الاختبار", buildPickCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 المتجر", buildStoreCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🏆 التحديات", buildChallengeCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ الإعدادات", buildSettingsCallback(settingsMenu)),
			tgbotapi.NewInlineKeyboardButtonData("👤 ملفي", buildProfileCallback()),
		),
	)
}

func backToMenuRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« القائمة الرئيسية", buildMenuCallback()),
	)
}

// buildPagePickerKeyboard lists every accessible page and every consecutive range.
func buildPagePickerKeyboard(pages []int, ranges []service.PageRange) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	buttons := 0

	for _, r := range ranges {
		if buttons >= maxPickerButtons {
			break
		}
		label := fmt.Sprintf("📚 الصفحات %d - %d", r.Start, r.End)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildRangeCallback(r.Start, r.End)),
		))
		buttons++
	}

	var row []tgbotapi.InlineKeyboardButton
	for _, p := range pages {
		if buttons >= maxPickerButtons {
			break
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("📄 "+strconv.Itoa(p), buildPageCallback(p)))
		buttons++
		if len(row) == pagesPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, backToMenuRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnswerKeyboard builds keyboard for a quiz question.
func buildAnswerKeyboard(q *entities.Question, questionNum int) tgbotapi.InlineKeyboardMarkup {
	inline := optionsInline(q)

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, opt := range q.Options {
		data := buildAnswerCallback(questionNum, i)
		if inline {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(opt.Label, data),
			))
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(optionLabel(i), data))
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnsweredKeyboard shows the options disabled, marking the correct one
// and the learner's wrong choice.
func buildAnsweredKeyboard(q *entities.Question, res entities.AnswerResult) tgbotapi.InlineKeyboardMarkup {
	inline := optionsInline(q)
	correct := q.CorrectIndex()

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, opt := range q.Options {
		label := optionLabel(i)
		if inline {
			label = opt.Label
		}
		switch {
		case i == correct:
			label = "✅ " + label
		case i == res.Choice:
			label = "❌ " + label
		}

		btn := tgbotapi.NewInlineKeyboardButtonData(label, buildNoopCallback())
		if inline {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
			continue
		}
		row = append(row, btn)
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 اختبار جديد", buildPickCallback()),
		),
		backToMenuRow(),
	)
}

// buildStoreKeyboard offers a buy button for each item not owned yet.
func buildStoreKeyboard(entries []service.StoreEntry) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, e := range entries {
		if e.Owned {
			continue
		}
		label := fmt.Sprintf("شراء %s (%d 💎)", e.Item.Name, e.Item.Price)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildBuyCallback(e.Item.ID)),
		))
	}
	rows = append(rows, backToMenuRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildChallengesKeyboard offers a start button per available challenge.
func buildChallengesKeyboard(challenges []entities.Challenge) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range challenges {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ "+c.Title, buildChallengeCallback(c.ID)),
		))
	}
	rows = append(rows, backToMenuRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildSettingsKeyboard builds the narrator and quiz length selection keyboard.
func buildSettingsKeyboard(current service.Settings, narrators []Narrator, counts []int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, n := range narrators {
		label := "🎧 " + n.Name
		if n.ID == current.Narrator {
			label = "✓ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildSettingsCallback(settingsNarrator, n.ID)),
		))
	}

	var row []tgbotapi.InlineKeyboardButton
	for _, c := range counts {
		label := fmt.Sprintf("%d سؤال", c)
		if c == current.QuestionsCount {
			label = "✓ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildSettingsCallback(settingsCount, strconv.Itoa(c))))
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, backToMenuRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
