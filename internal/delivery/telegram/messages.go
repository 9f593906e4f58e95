// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/service"
)

// Notices.
const (
	msgWelcome            = "السلام عليكم! 👋\nهذا اختبار لحفظ صفحات القرآن الكريم.\n\nأدخل اسمك للبدء:"
	msgPressStart         = "اضغط /start وأدخل اسمك للبدء."
	msgUseMenu            = "استخدم /menu لفتح القائمة الرئيسية."
	msgEmptyName          = "الرجاء إدخال اسم صحيح."
	msgPlayerLookupFailed = "خطأ في الاتصال بالخادم. يرجى المحاولة مرة أخرى."
	msgContentUnavailable = "فشل في تحميل الآيات. يرجى المحاولة مرة أخرى."
	msgNotEnoughAyahs     = "لا توجد آيات كافية في هذا النطاق لإنشاء أسئلة."
	msgNoGenerators       = "لا توجد أنواع أسئلة مفعلة حالياً."
	msgRangeNotOwned      = "أنت لا تملك كل الصفحات في هذا النطاق. يمكنك شراؤها من المتجر."
	msgInvalidRange       = "نطاق غير صالح. مثال: /range 3 7"
	msgUseRange           = "استخدم: /range 3 7"
	msgInsufficientFunds  = "ليس لديك ما يكفي من الألماس! 💎"
	msgAlreadyOwned       = "أنت تملك هذا العنصر بالفعل."
	msgItemNotFound       = "هذا العنصر غير موجود في المتجر."
	msgChallengeGone      = "هذا التحدي لم يعد متاحاً."
	msgNoChallenges       = "لا توجد تحديات متاحة حالياً. تفقد لاحقاً!"
	msgStaleQuestion      = "هذا السؤال لم يعد نشطاً."
	msgInvalidSetting     = "قيمة غير صالحة."
	msgInternalError      = "حدث خطأ ما. حاول مرة أخرى لاحقاً."
	msgUnknownCommand     = "أمر غير معروف. استخدم /help لعرض الأوامر."
	msgLoggedOut          = "تم تسجيل الخروج. اضغط /start للدخول باسم آخر."
	msgChoosePages        = "اختر الصفحة أو النطاق للاختبار:"
	msgPurchaseUnsaved    = "تم الشراء، لكن تعذر حفظ التقدم. سيُعاد الحفظ مع اختبارك القادم."
)

const msgHelp = "الأوامر:\n" +
	"/menu - القائمة الرئيسية\n" +
	"/quiz - اختيار صفحة للاختبار\n" +
	"/range N M - اختبار في الصفحات من N إلى M\n" +
	"/store - المتجر\n" +
	"/challenges - التحديات\n" +
	"/profile - ملفي\n" +
	"/settings - الإعدادات\n" +
	"/logout - تسجيل الخروج"

// maxInlineOptionLen is the longest option label still shown on a button.
const maxInlineOptionLen = 30

var optionDigits = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣"}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// buildProgressBar creates a text progress bar for a percentage.
func buildProgressBar(percent float64, length int) string {
	filled := int(percent / 100 * float64(length))
	if filled < 0 {
		filled = 0
	}
	if filled > length {
		filled = length
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}

func optionLabel(i int) string {
	if i < len(optionDigits) {
		return optionDigits[i]
	}
	return strconv.Itoa(i + 1)
}

// optionsInline reports whether every option is short enough to be a button label.
func optionsInline(q *entities.Question) bool {
	for _, opt := range q.Options {
		if len([]rune(opt.Label)) > maxInlineOptionLen {
			return false
		}
	}
	return true
}

func narratorName(narrators []Narrator, id string) string {
	for _, n := range narrators {
		if n.ID == id {
			return n.Name
		}
	}
	return id
}

// formatProfile renders the main screen summary (MarkdownV2 safe).
func formatProfile(p *service.Profile, narrators []Narrator) string {
	var sb strings.Builder

	sb.WriteString(bold("👤 " + p.Player.Name))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🏅 المستوى %d: %s", p.Level.Level, p.Level.Title)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(p.Level.Progress, 10)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("⭐ XP: %d / %s", p.Level.CurrentXP, p.Level.NextLevelLabel())))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("💎 الألماس: %d", p.Player.Diamonds)))
	sb.WriteString("\n")

	if p.Theme != "" {
		sb.WriteString(md("🎨 السمة: " + p.Theme))
		sb.WriteString("\n")
	}

	sb.WriteString(md("📖 الصفحات المتاحة: " + formatPages(p.Pages)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🎧 القارئ: %s", narratorName(narrators, p.Settings.Narrator))))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("📝 عدد الأسئلة: %d", p.Settings.QuestionsCount)))

	return sb.String()
}

func formatPages(pages []int) string {
	if len(pages) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, strconv.Itoa(p))
	}
	return strings.Join(parts, "، ")
}

// formatQuestion renders a question with its numbering (MarkdownV2 safe).
func formatQuestion(step *service.QuizStep) string {
	q := step.Question

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("السؤال %d من %d", step.Number, step.Total)))
	sb.WriteString(md(fmt.Sprintf("   •   النتيجة: %d", step.Score)))
	sb.WriteString("\n\n")
	sb.WriteString(md(q.Prompt))

	if q.Text != "" {
		sb.WriteString("\n\n")
		sb.WriteString(bold(q.Text))
	}

	if !optionsInline(q) {
		sb.WriteString("\n")
		for i, opt := range q.Options {
			sb.WriteString("\n")
			sb.WriteString(md(optionLabel(i) + " " + opt.Label))
		}
	}

	return sb.String()
}

// formatAnswerFeedback formats feedback for a quiz answer (MarkdownV2 safe).
func formatAnswerFeedback(res entities.AnswerResult) string {
	if res.Correct {
		return md("✅ إجابة صحيحة!")
	}
	return fmt.Sprintf(
		"%s\n%s %s",
		md("❌ إجابة خاطئة."),
		md("الإجابة الصحيحة:"),
		bold(res.CorrectAnswer),
	)
}

// formatQuizResult formats the end-of-quiz summary (MarkdownV2 safe).
func formatQuizResult(r *service.QuizResult) string {
	percentage := 0.0
	if r.Total > 0 {
		percentage = float64(r.Score) / float64(r.Total) * 100
	}

	emoji, message := "📚", "استمر في المراجعة!"
	switch {
	case r.Perfect:
		emoji, message = "🌟", "علامة كاملة! ما شاء الله!"
	case percentage >= 70:
		emoji, message = "👍", "نتيجة جيدة!"
	case percentage >= 50:
		emoji, message = "💪", "لا بأس، واصل!"
	}

	var sb strings.Builder
	sb.WriteString(bold(emoji + " انتهى الاختبار!"))
	sb.WriteString("\n\n")
	sb.WriteString(md("النتيجة: "))
	sb.WriteString(bold(fmt.Sprintf("%d/%d (%.0f%%)", r.Score, r.Total, percentage)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(percentage, 10)))
	sb.WriteString("\n")
	sb.WriteString(md(message))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("⭐ +%d XP", r.EarnedXP)))

	if r.BonusDiamonds > 0 {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("💎 مكافأة العلامة الكاملة: +%d", r.BonusDiamonds)))
	}

	if r.LevelUp != nil {
		sb.WriteString("\n\n")
		sb.WriteString(bold(fmt.Sprintf("🎉 ترقية! وصلت إلى المستوى %d: %s", r.LevelUp.Level, r.LevelUp.Title)))
		if r.LevelUp.Reward > 0 {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("💎 مكافأة المستوى: +%d", r.LevelUp.Reward)))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🏅 المستوى %d: %s  •  XP %d / %s",
		r.Level.Level, r.Level.Title, r.Level.CurrentXP, r.Level.NextLevelLabel())))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("💎 الرصيد: %d", r.Diamonds)))
	sb.WriteString("\n\n")

	if r.Saved {
		sb.WriteString(md("💾 تم حفظ تقدمك."))
	} else {
		sb.WriteString(md("⚠️ تعذر حفظ التقدم."))
	}

	return sb.String()
}

// formatStore renders the catalog (MarkdownV2 safe).
func formatStore(entries []service.StoreEntry, diamonds int) string {
	var sb strings.Builder
	sb.WriteString(bold("🛒 المتجر"))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("💎 رصيدك: %d", diamonds)))

	if len(entries) == 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md("المتجر فارغ حالياً."))
		return sb.String()
	}

	for _, e := range entries {
		sb.WriteString("\n\n")
		sb.WriteString(bold(itemIcon(e.Item.Type) + " " + e.Item.Name))
		if e.Item.Description != "" {
			sb.WriteString("\n")
			sb.WriteString(md(e.Item.Description))
		}
		sb.WriteString("\n")
		if e.Owned {
			sb.WriteString(md("✅ تم الشراء"))
		} else {
			sb.WriteString(md(fmt.Sprintf("السعر: %d 💎", e.Item.Price)))
		}
	}

	return sb.String()
}

func itemIcon(t entities.ItemType) string {
	switch t {
	case entities.ItemTypePage:
		return "📖"
	case entities.ItemTypeTheme:
		return "🎨"
	default:
		return "🎁"
	}
}

// formatPurchase renders the purchase confirmation (MarkdownV2 safe).
func formatPurchase(res *service.PurchaseResult) string {
	text := md(fmt.Sprintf("🎉 تم شراء «%s» بنجاح!", res.Item.Name))
	if res.Item.Type == entities.ItemTypePage {
		text += "\n" + md("📖 الصفحات المتاحة: "+formatPages(res.Pages))
	}
	if !res.Saved {
		text += "\n\n" + md("⚠️ "+msgPurchaseUnsaved)
	}
	return text
}

// formatChallenges renders the available challenges (MarkdownV2 safe).
func formatChallenges(challenges []entities.Challenge) string {
	if len(challenges) == 0 {
		return md("🏆 " + msgNoChallenges)
	}

	var sb strings.Builder
	sb.WriteString(bold("🏆 التحديات المتاحة"))

	for _, c := range challenges {
		sb.WriteString("\n\n")
		sb.WriteString(bold(c.Title))
		if c.Description != "" {
			sb.WriteString("\n")
			sb.WriteString(md(c.Description))
		}
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("📝 %d سؤال  •  ⏳ حتى %s",
			c.QuestionsCount, c.EndTime.UTC().Format(time.DateTime))))
	}

	return sb.String()
}

// formatSettings renders the settings screen (MarkdownV2 safe).
func formatSettings(s service.Settings, narrators []Narrator) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s",
		bold("⚙️ الإعدادات"),
		md("🎧 القارئ: "+narratorName(narrators, s.Narrator)),
		md(fmt.Sprintf("📝 عدد الأسئلة: %d", s.QuestionsCount)),
	)
}
