package telegram

import (
	"strconv"
	"strings"
	"sync"

	"github.com/antonvrn/animegirl-backend/internal/user"
)

// шаги анкеты: имя -> возраст -> пол
const (
	regStepName = iota
	regStepAge
	regStepGender
)

const (
	regMinAge = 7
	regMaxAge = 100
)

var genderLabels = map[string]string{
	"male":   "Мужской",
	"female": "Женский",
}

type regState struct {
	step   int
	name   string
	age    int
	gender string
}

// registrationFlow — состояния анкеты по чатам, живут только в памяти:
// недозаполненная анкета после рестарта просто начинается заново.
type registrationFlow struct {
	mu     sync.Mutex
	states map[int64]*regState
}

func newRegistrationFlow() *registrationFlow {
	return &registrationFlow{states: make(map[int64]*regState)}
}

func (f *registrationFlow) start(tgID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[tgID] = &regState{step: regStepName}
	return "Введите свое имя"
}

func (f *registrationFlow) active(tgID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.states[tgID]
	return ok
}

// submitText — текстовые шаги анкеты. handled=false, если анкета не начата
// и сообщение должно уйти в обычный диалог.
func (f *registrationFlow) submitText(tgID int64, text string) (reply string, askGender bool, handled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.states[tgID]
	if !ok {
		return "", false, false
	}

	text = strings.TrimSpace(text)

	switch st.step {
	case regStepName:
		if text == "" {
			return "Введите свое имя", false, true
		}
		st.name = text
		st.step = regStepAge
		return "Записано, сколько тебе лет? (от 7 до 100)", false, true

	case regStepAge:
		age, err := strconv.Atoi(text)
		if err != nil {
			return "Возраст должен быть числом, попробуйте еще раз", false, true
		}
		if age < regMinAge || age > regMaxAge {
			return "Введите возраст от 7 до 100", false, true
		}
		st.age = age
		st.step = regStepGender
		return "Выберите пол", true, true
	}

	return "Выбери пол кнопкой ниже", false, true
}

// submitGender — финальный шаг. При валидном выборе состояние снимается
// и возвращается заполненная анкета.
func (f *registrationFlow) submitGender(tgID int64, gender string) (*regState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.states[tgID]
	if !ok || st.step != regStepGender {
		return nil, false
	}
	if _, known := genderLabels[gender]; !known {
		return nil, false
	}

	st.gender = gender
	delete(f.states, tgID)
	return st, true
}

func profileUpdate(tgID int64, st *regState) user.UpdateInput {
	name := st.name
	age := st.age
	gender := st.gender
	return user.UpdateInput{ID: tgID, Name: &name, Age: &age, Gender: &gender}
}

func profileSavedText(st *regState) string {
	return "Готово! Профиль сохранён:\n" +
		"Имя: " + st.name + "\n" +
		"Возраст: " + strconv.Itoa(st.age) + "\n" +
		"Пол: " + genderLabels[st.gender] + "\n\n" +
		"Все готово, начинай со мной общаться"
}
