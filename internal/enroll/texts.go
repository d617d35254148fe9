package enroll

// TextKey identifies one localizable prompt or button label.
type TextKey string

const (
	TextChooseLanguage  TextKey = "choose_language"
	TextAskName         TextKey = "ask_name"
	TextAskCourse       TextKey = "ask_course"
	TextAskSubcourse    TextKey = "ask_subcourse"
	TextSubcourseChosen TextKey = "subcourse_chosen"
	TextAskDay          TextKey = "ask_day"
	TextAskTime         TextKey = "ask_time"
	TextAskPhone        TextKey = "ask_phone"
	TextPhoneInvalid    TextKey = "phone_invalid"
	TextCourseNotFound  TextKey = "course_not_found"
	TextChoiceInvalid   TextKey = "choice_invalid"
	TextConfirmed       TextKey = "confirmed"
	TextCancelled       TextKey = "cancelled"
	TextAboutTitle      TextKey = "about_title"

	BtnLangRU   TextKey = "btn_lang_ru"
	BtnLangUZ   TextKey = "btn_lang_uz"
	BtnConfirm  TextKey = "btn_confirm"
	BtnCancel   TextKey = "btn_cancel"
	BtnModify   TextKey = "btn_modify"
	BtnRestart  TextKey = "btn_restart"
	BtnAbout    TextKey = "btn_about"
	BtnBranches TextKey = "btn_branches"
	BtnTeachers TextKey = "btn_teachers"
)

// DispatchErrorText is shown when a channel notification cannot be delivered.
// Always in uz, matching the fixed-locale channel summaries.
const DispatchErrorText = "Xatolik yuz berdi. Iltimos, qayta urinib ko'ring."

var texts = map[TextKey]map[Language]string{
	TextChooseLanguage: {
		LangRU: "Выберите язык / Tilni tanlang:",
		LangUZ: "Выберите язык / Tilni tanlang:",
	},
	TextAskName: {
		LangRU: "Введите свое имя и фамилию:",
		LangUZ: "Ismingiz va familiyangizni kiriting:",
	},
	TextAskCourse: {
		LangRU: "Какой курс вы выберете?",
		LangUZ: "Qaysi kursni tanlaysiz?",
	},
	TextAskSubcourse: {
		LangRU: "Какой подкурс вы выберете?",
		LangUZ: "Qaysi subkursni tanlaysiz?",
	},
	TextSubcourseChosen: {
		LangRU: "Подкурс выбран!",
		LangUZ: "Subkurs tanlandi!",
	},
	TextAskDay: {
		LangRU: "Выберите день:",
		LangUZ: "Kunni tanlang:",
	},
	TextAskTime: {
		LangRU: "Выберите время:",
		LangUZ: "Vaqtni tanlang:",
	},
	TextAskPhone: {
		LangRU: "Введите свой номер телефона:",
		LangUZ: "Telefon raqamingizni kiriting:",
	},
	TextPhoneInvalid: {
		LangRU: "Пожалуйста, введите свой номер телефона в правильном формате!",
		LangUZ: "Iltimos, telefon raqamingizni to'g'ri formatda kiriting!",
	},
	TextCourseNotFound: {
		LangRU: "Курс не найден!",
		LangUZ: "Kurs topilmadi!",
	},
	TextChoiceInvalid: {
		LangRU: "Пожалуйста, выберите вариант из списка.",
		LangUZ: "Iltimos, ro'yxatdan birini tanlang.",
	},
	TextConfirmed: {
		LangRU: "Ваша информация отправлена на канал.",
		LangUZ: "Ma'lumotlaringiz kanalga jo'natildi.",
	},
	TextCancelled: {
		LangRU: "Операция отменена.",
		LangUZ: "Operatsiya bekor qilindi.",
	},
	TextAboutTitle: {
		LangRU: "Biz haqimizda",
		LangUZ: "Biz haqimizda",
	},
	BtnLangRU: {
		LangRU: "Русский",
		LangUZ: "Русский",
	},
	BtnLangUZ: {
		LangRU: "O'zbek",
		LangUZ: "O'zbek",
	},
	BtnConfirm: {
		LangRU: "Подтверждение",
		LangUZ: "Tasdiqlash",
	},
	BtnCancel: {
		LangRU: "Отмена",
		LangUZ: "Bekor qilish",
	},
	BtnModify: {
		LangRU: "Изменять",
		LangUZ: "O`zgartirish",
	},
	BtnRestart: {
		LangRU: "Выбор курса",
		LangUZ: "Kurs tanlash",
	},
	BtnAbout: {
		LangRU: "O нас",
		LangUZ: "Biz haqimizda",
	},
	BtnBranches: {
		LangRU: "FLIAL",
		LangUZ: "FLIAL",
	},
	BtnTeachers: {
		LangRU: "O`QITUVCHILAR",
		LangUZ: "O`QITUVCHILAR",
	},
}

// Text resolves a localized string, defaulting to ru when the key has no
// translation for the requested language.
func Text(key TextKey, lang Language) string {
	byLang, ok := texts[key]
	if !ok {
		return string(key)
	}
	if s, ok := byLang[lang]; ok {
		return s
	}
	return byLang[LangRU]
}
