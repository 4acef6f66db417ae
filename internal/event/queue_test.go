package event

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type QueueTestSuite struct {
	suite.Suite
}

func TestQueueTestSuite(t *testing.T) {
	suite.Run(t, new(QueueTestSuite))
}

func (ts *QueueTestSuite) TestPopOrdersByTimestamp() {
	q := New()
	q.Push(105, JobSubmitted, "e")
	q.Push(52, JobSubmitted, "b")
	q.Push(81, JobSubmitted, "d")
	q.Push(30, JobSubmitted, "a")

	var order []string
	for !q.IsEmpty() {
		e, ok := q.Pop()
		ts.Require().True(ok)
		order = append(order, e.Payload.(string))
	}

	ts.Equal([]string{"a", "b", "d", "e"}, order)
}

func (ts *QueueTestSuite) TestEqualTimestampsBreakByInsertionOrder() {
	q := New()
	q.Push(10, JobSubmitted, "first")
	q.Push(10, JobSubmitted, "second")
	q.Push(10, JobSubmitted, "third")

	first, _ := q.Pop()
	second, _ := q.Pop()
	third, _ := q.Pop()

	ts.Equal("first", first.Payload)
	ts.Equal("second", second.Payload)
	ts.Equal("third", third.Payload)
}

func (ts *QueueTestSuite) TestPeekDoesNotRemove() {
	q := New()
	q.Push(1, JobSubmitted, "x")

	peeked, ok := q.Peek()
	ts.Require().True(ok)
	ts.Equal(1, peeked.Timestamp)
	ts.Equal(1, q.Size())

	popped, ok := q.Pop()
	ts.Require().True(ok)
	ts.Equal(peeked.Payload, popped.Payload)
	ts.True(q.IsEmpty())
}

func (ts *QueueTestSuite) TestPopEmptyReturnsFalse() {
	q := New()
	_, ok := q.Pop()
	ts.False(ok)
}

func (ts *QueueTestSuite) TestEventTypeString() {
	ts.Equal("JOB_SUBMITTED", JobSubmitted.String())
	ts.Equal("WORKER_READY", WorkerReady.String())
	ts.Equal("WORKER_DONE", WorkerDone.String())
	ts.Equal("WORKER_TO_POOL", WorkerToPool.String())
}
