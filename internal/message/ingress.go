package message

import "sync"

// chunkSize is the number of messages per node in the ingress list.
const chunkSize = 128

// ingress is a chunked linked-list FIFO of messages.
//
// It is NOT thread-safe. Queue guards it with its mutex while producers push,
// and the drain owns it exclusively once it has been swapped out.
type ingress struct {
	head   *chunk
	tail   *chunk
	length int
}

var chunkPool = sync.Pool{
	New: func() any {
		return &chunk{}
	},
}

type chunk struct {
	msgs    [chunkSize]Message
	next    *chunk
	readPos int
	pos     int
}

func newChunk() *chunk {
	c := chunkPool.Get().(*chunk)
	c.pos = 0
	c.readPos = 0
	c.next = nil
	return c
}

// returnChunk clears the captured closures before pooling the chunk.
func returnChunk(c *chunk) {
	for i := 0; i < c.pos; i++ {
		c.msgs[i] = Message{}
	}
	c.pos = 0
	c.readPos = 0
	c.next = nil
	chunkPool.Put(c)
}

func (q *ingress) push(m Message) {
	if q.tail == nil {
		q.tail = newChunk()
		q.head = q.tail
	}
	if q.tail.pos == len(q.tail.msgs) {
		next := newChunk()
		q.tail.next = next
		q.tail = next
	}
	q.tail.msgs[q.tail.pos] = m
	q.tail.pos++
	q.length++
}

func (q *ingress) pop() (Message, bool) {
	if q.head == nil || q.head.readPos >= q.head.pos {
		return Message{}, false
	}

	m := q.head.msgs[q.head.readPos]
	q.head.msgs[q.head.readPos] = Message{}
	q.head.readPos++
	q.length--

	if q.head.readPos >= q.head.pos {
		old := q.head
		q.head = old.next
		if q.head == nil {
			q.tail = nil
		}
		returnChunk(old)
	}
	return m, true
}

func (q *ingress) len() int {
	return q.length
}
