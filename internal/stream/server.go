// Package stream replays a trajectory to websocket clients, one JSON frame
// per recorded step.
package stream

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/nbodysim/internal/logging"
	"github.com/san-kum/nbodysim/internal/physics"
)

// Frame is the wire form of one step.
type Frame struct {
	Step      int         `json:"step"`
	Time      float64     `json:"time"`
	Positions [][]float64 `json:"positions"`
}

type Options struct {
	// Stride sends every Stride-th step. The last step is always sent.
	Stride int
	// Interval is the pause between frames; zero sends as fast as possible.
	Interval time.Duration
}

type Server struct {
	traj     *physics.Trajectory
	opts     Options
	upgrader websocket.Upgrader
	log      *logging.Logger
}

func NewServer(traj *physics.Trajectory, opts Options, log *logging.Logger) *Server {
	if opts.Stride < 1 {
		opts.Stride = 1
	}
	return &Server{
		traj: traj,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log,
	}
}

// Handler serves the replay on /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// Steps lists the step indices sent for the given stride.
func (s *Server) Steps(stride int) []int {
	if stride < 1 {
		stride = 1
	}
	last := s.traj.Steps()
	steps := make([]int, 0, last/stride+2)
	for n := 0; n <= last; n += stride {
		steps = append(steps, n)
	}
	if steps[len(steps)-1] != last {
		steps = append(steps, last)
	}
	return steps
}

func (s *Server) frame(n int) Frame {
	f := Frame{Step: n, Time: s.traj.Times[n], Positions: make([][]float64, s.traj.NumBodies())}
	for i, p := range s.traj.Frame(n) {
		f.Positions[i] = p
	}
	return f
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	stride := s.opts.Stride
	if v := r.URL.Query().Get("stride"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "stride must be a positive integer", http.StatusBadRequest)
			return
		}
		stride = n
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("upgrade error: %v", err)
		return
	}
	defer conn.Close()

	s.log.Infof("client %s connected", conn.RemoteAddr())

	var tick <-chan time.Time
	if s.opts.Interval > 0 {
		ticker := time.NewTicker(s.opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for _, n := range s.Steps(stride) {
		if err := conn.WriteJSON(s.frame(n)); err != nil {
			s.log.Debugf("write to %s: %v", conn.RemoteAddr(), err)
			return
		}
		if tick == nil {
			continue
		}
		select {
		case <-tick:
		case <-r.Context().Done():
			return
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of trajectory")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		s.log.Debugf("close %s: %v", conn.RemoteAddr(), err)
	}
	s.log.Infof("client %s replay finished", conn.RemoteAddr())
}
