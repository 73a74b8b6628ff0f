package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

var _ quizSession = &quizSessionMock{}

type quizSessionMock struct {
	ResetFunc                    func()
	SetModeFunc                  func(token string) error
	NextWordFunc                 func() (domain.Term, bool)
	CheckAnswerFunc              func(term domain.Term, input string) bool
	IncrementIncorrectRepeatFunc func(term domain.Term) int
	EndSessionFunc               func(ctx context.Context) (domain.Result, error)
	UpdateWordsFunc              func(terms []domain.Term)
	StatsFunc                    func() domain.Stats

	calls struct {
		Reset   []struct{}
		SetMode []struct {
			Token string
		}
		NextWord    []struct{}
		CheckAnswer []struct {
			Term  domain.Term
			Input string
		}
		IncrementIncorrectRepeat []struct {
			Term domain.Term
		}
		EndSession []struct {
			Ctx context.Context
		}
		UpdateWords []struct {
			Terms []domain.Term
		}
		Stats []struct{}
	}
	lockReset                    sync.RWMutex
	lockSetMode                  sync.RWMutex
	lockNextWord                 sync.RWMutex
	lockCheckAnswer              sync.RWMutex
	lockIncrementIncorrectRepeat sync.RWMutex
	lockEndSession               sync.RWMutex
	lockUpdateWords              sync.RWMutex
	lockStats                    sync.RWMutex
}

func (mock *quizSessionMock) Reset() {
	if mock.ResetFunc == nil {
		panic("quizSessionMock.ResetFunc: method is nil but quizSession.Reset was just called")
	}
	callInfo := struct{}{}
	mock.lockReset.Lock()
	mock.calls.Reset = append(mock.calls.Reset, callInfo)
	mock.lockReset.Unlock()
	mock.ResetFunc()
}

func (mock *quizSessionMock) ResetCalls() []struct{} {
	var calls []struct{}
	mock.lockReset.RLock()
	calls = mock.calls.Reset
	mock.lockReset.RUnlock()
	return calls
}

func (mock *quizSessionMock) SetMode(token string) error {
	if mock.SetModeFunc == nil {
		panic("quizSessionMock.SetModeFunc: method is nil but quizSession.SetMode was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockSetMode.Lock()
	mock.calls.SetMode = append(mock.calls.SetMode, callInfo)
	mock.lockSetMode.Unlock()
	return mock.SetModeFunc(token)
}

func (mock *quizSessionMock) SetModeCalls() []struct {
	Token string
} {
	var calls []struct {
		Token string
	}
	mock.lockSetMode.RLock()
	calls = mock.calls.SetMode
	mock.lockSetMode.RUnlock()
	return calls
}

func (mock *quizSessionMock) NextWord() (domain.Term, bool) {
	if mock.NextWordFunc == nil {
		panic("quizSessionMock.NextWordFunc: method is nil but quizSession.NextWord was just called")
	}
	callInfo := struct{}{}
	mock.lockNextWord.Lock()
	mock.calls.NextWord = append(mock.calls.NextWord, callInfo)
	mock.lockNextWord.Unlock()
	return mock.NextWordFunc()
}

func (mock *quizSessionMock) NextWordCalls() []struct{} {
	var calls []struct{}
	mock.lockNextWord.RLock()
	calls = mock.calls.NextWord
	mock.lockNextWord.RUnlock()
	return calls
}

func (mock *quizSessionMock) CheckAnswer(term domain.Term, input string) bool {
	if mock.CheckAnswerFunc == nil {
		panic("quizSessionMock.CheckAnswerFunc: method is nil but quizSession.CheckAnswer was just called")
	}
	callInfo := struct {
		Term  domain.Term
		Input string
	}{Term: term, Input: input}
	mock.lockCheckAnswer.Lock()
	mock.calls.CheckAnswer = append(mock.calls.CheckAnswer, callInfo)
	mock.lockCheckAnswer.Unlock()
	return mock.CheckAnswerFunc(term, input)
}

func (mock *quizSessionMock) CheckAnswerCalls() []struct {
	Term  domain.Term
	Input string
} {
	var calls []struct {
		Term  domain.Term
		Input string
	}
	mock.lockCheckAnswer.RLock()
	calls = mock.calls.CheckAnswer
	mock.lockCheckAnswer.RUnlock()
	return calls
}

func (mock *quizSessionMock) IncrementIncorrectRepeat(term domain.Term) int {
	if mock.IncrementIncorrectRepeatFunc == nil {
		panic("quizSessionMock.IncrementIncorrectRepeatFunc: method is nil but quizSession.IncrementIncorrectRepeat was just called")
	}
	callInfo := struct {
		Term domain.Term
	}{Term: term}
	mock.lockIncrementIncorrectRepeat.Lock()
	mock.calls.IncrementIncorrectRepeat = append(mock.calls.IncrementIncorrectRepeat, callInfo)
	mock.lockIncrementIncorrectRepeat.Unlock()
	return mock.IncrementIncorrectRepeatFunc(term)
}

func (mock *quizSessionMock) IncrementIncorrectRepeatCalls() []struct {
	Term domain.Term
} {
	var calls []struct {
		Term domain.Term
	}
	mock.lockIncrementIncorrectRepeat.RLock()
	calls = mock.calls.IncrementIncorrectRepeat
	mock.lockIncrementIncorrectRepeat.RUnlock()
	return calls
}

func (mock *quizSessionMock) EndSession(ctx context.Context) (domain.Result, error) {
	if mock.EndSessionFunc == nil {
		panic("quizSessionMock.EndSessionFunc: method is nil but quizSession.EndSession was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockEndSession.Lock()
	mock.calls.EndSession = append(mock.calls.EndSession, callInfo)
	mock.lockEndSession.Unlock()
	return mock.EndSessionFunc(ctx)
}

func (mock *quizSessionMock) EndSessionCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockEndSession.RLock()
	calls = mock.calls.EndSession
	mock.lockEndSession.RUnlock()
	return calls
}

func (mock *quizSessionMock) UpdateWords(terms []domain.Term) {
	if mock.UpdateWordsFunc == nil {
		panic("quizSessionMock.UpdateWordsFunc: method is nil but quizSession.UpdateWords was just called")
	}
	callInfo := struct {
		Terms []domain.Term
	}{Terms: terms}
	mock.lockUpdateWords.Lock()
	mock.calls.UpdateWords = append(mock.calls.UpdateWords, callInfo)
	mock.lockUpdateWords.Unlock()
	mock.UpdateWordsFunc(terms)
}

func (mock *quizSessionMock) UpdateWordsCalls() []struct {
	Terms []domain.Term
} {
	var calls []struct {
		Terms []domain.Term
	}
	mock.lockUpdateWords.RLock()
	calls = mock.calls.UpdateWords
	mock.lockUpdateWords.RUnlock()
	return calls
}

func (mock *quizSessionMock) Stats() domain.Stats {
	if mock.StatsFunc == nil {
		panic("quizSessionMock.StatsFunc: method is nil but quizSession.Stats was just called")
	}
	callInfo := struct{}{}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc()
}

func (mock *quizSessionMock) StatsCalls() []struct{} {
	var calls []struct{}
	mock.lockStats.RLock()
	calls = mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}

