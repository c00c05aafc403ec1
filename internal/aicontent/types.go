package aicontent

// Kind — вид генерируемого контента.
type Kind string

// Поддерживаемые виды контента.
const (
	KindAnalysis Kind = "analysis"
	KindPlan     Kind = "plan"
	KindChat     Kind = "chat"
	KindProfile  Kind = "profile"
)

// systemPrompts задаёт системный промпт для каждого вида контента.
var systemPrompts = map[Kind]string{
	KindAnalysis: "Ты ассистент нутрициолога. Проанализируй данные пациента из запроса. " +
		"Пиши структурированно, по пунктам, без медицинских диагнозов.",
	KindPlan: "Ты ассистент нутрициолога. Составь план питания по запросу. " +
		"Пиши структурированно, по приёмам пищи, без медицинских диагнозов.",
	KindChat: "Ты ассистент нутрициолога. Ответь на вопрос пациента о питании. " +
		"Пиши кратко и практично, без медицинских диагнозов.",
	KindProfile: "Ты ассистент нутрициолога. Составь профиль питания пациента по запросу. " +
		"Пиши простым языком, без медицинских диагнозов.",
}

// ValidKinds возвращает список поддерживаемых видов контента для валидации запросов.
func ValidKinds() []string {
	return []string{string(KindAnalysis), string(KindPlan), string(KindChat), string(KindProfile)}
}
