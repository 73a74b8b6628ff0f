package quiz

import (
	"context"
	"sync"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

var _ resultSink = &resultSinkMock{}

type resultSinkMock struct {
	RecordFunc func(ctx context.Context, result domain.Result) error

	calls struct {
		Record []struct {
			Ctx    context.Context
			Result domain.Result
		}
	}
	lockRecord sync.RWMutex
}

func (mock *resultSinkMock) Record(ctx context.Context, result domain.Result) error {
	if mock.RecordFunc == nil {
		panic("resultSinkMock.RecordFunc: method is nil but resultSink.Record was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Result domain.Result
	}{Ctx: ctx, Result: result}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, result)
}

func (mock *resultSinkMock) RecordCalls() []struct {
	Ctx    context.Context
	Result domain.Result
} {
	var calls []struct {
		Ctx    context.Context
		Result domain.Result
	}
	mock.lockRecord.RLock()
	calls = mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
