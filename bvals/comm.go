package bvals

import (
	"fmt"
	"sync"
)

// BoundaryCellsTag is the single message tag used for every
// boundary-cell exchange; senders and receivers match on (peer, tag).
const BoundaryCellsTag = 0

// Cluster is the in-process message fabric connecting the ranks of one
// decomposed run: one buffered channel per ordered (sender, receiver)
// pair, plus a shared min-reduction. It stands in for the message
// passing layer of a distributed run; the exchange protocol built on
// it is identical.
type Cluster struct {
	np    int
	chans [][]chan message

	mu         sync.Mutex
	cond       *sync.Cond
	reduceVal  float64
	reduceCnt  int
	generation int
	result     float64
}

type message struct {
	tag  int
	data []float64
}

// Request is a pre-posted receive: created by Irecv, completed by Wait.
type Request struct {
	ch  chan message
	tag int
}

// NewCluster builds the fabric for np ranks.
func NewCluster(np int) *Cluster {
	c := &Cluster{np: np, chans: make([][]chan message, np)}
	for from := 0; from < np; from++ {
		c.chans[from] = make([]chan message, np)
		for to := 0; to < np; to++ {
			// One outstanding message per pair per direction step.
			c.chans[from][to] = make(chan message, 1)
		}
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Comm is one rank's endpoint into the cluster.
type Comm struct {
	cluster *Cluster
	rank    int
}

// Rank returns this endpoint's rank id.
func (c *Comm) Rank() int { return c.rank }

// NewComm returns the endpoint for the given rank.
func (c *Cluster) NewComm(rank int) *Comm {
	if rank < 0 || rank >= c.np {
		panic(fmt.Errorf("bvals: rank %d out of range [0,%d)", rank, c.np))
	}
	return &Comm{cluster: c, rank: rank}
}

// Irecv posts a receive for a message from src with the given tag.
func (c *Comm) Irecv(src, tag int) *Request {
	return &Request{ch: c.cluster.chans[src][c.rank], tag: tag}
}

// Send delivers buf[:cnt] to dst. The data is copied so the caller may
// reuse buf immediately.
func (c *Comm) Send(dst, tag int, buf []float64, cnt int) {
	data := make([]float64, cnt)
	copy(data, buf[:cnt])
	c.cluster.chans[c.rank][dst] <- message{tag: tag, data: data}
}

// Wait blocks until the posted receive completes and returns the
// payload. A tag mismatch is a protocol failure.
func (c *Comm) Wait(rq *Request) ([]float64, error) {
	msg := <-rq.ch
	if msg.tag != rq.tag {
		return nil, fmt.Errorf("rank %d: tag mismatch: got %d want %d", c.rank, msg.tag, rq.tag)
	}
	return msg.data, nil
}

// AllreduceMin returns the minimum of v over all ranks. Every rank
// must call it once per reduction.
func (c *Comm) AllreduceMin(v float64) float64 {
	cl := c.cluster
	cl.mu.Lock()
	gen := cl.generation
	if cl.reduceCnt == 0 || v < cl.reduceVal {
		cl.reduceVal = v
	}
	cl.reduceCnt++
	if cl.reduceCnt == cl.np {
		cl.result = cl.reduceVal
		cl.reduceCnt = 0
		cl.generation++
		cl.cond.Broadcast()
		cl.mu.Unlock()
		return cl.result
	}
	for gen == cl.generation {
		cl.cond.Wait()
	}
	res := cl.result
	cl.mu.Unlock()
	return res
}
