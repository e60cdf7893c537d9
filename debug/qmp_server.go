package debug

import (
	"net"
	"sync"

	"xtdbg/emu/log"
	"xtdbg/hw"
)

// QMPServer owns the QMP TCP listener and, at most, one accepted client's
// connection, same invariant as GDBServer. Unlike the GDB endpoint, the one
// accepted client runs on its own goroutine: QMP commands like savestate or
// screendump block on the Gate for real work to happen on the emulator's
// poll loop, and a dedicated goroutine can afford to block on that without
// stalling anything else. A second connection arriving while one is already
// being served is closed immediately without disturbing the first.
type QMPServer struct {
	Facade hw.Facade
	Gate   *Gate

	mu     sync.Mutex
	ln     net.Listener
	client net.Conn
	wg     sync.WaitGroup
}

func NewQMPServer(f hw.Facade, g *Gate) *QMPServer {
	return &QMPServer{Facade: f, Gate: g}
}

func (s *QMPServer) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	log.ModQMP.InfoZ("QMP server listening").String("addr", addr).End()

	s.wg.Add(1)
	go s.acceptLoop(ln)
	return nil
}

func (s *QMPServer) Stop() error {
	s.mu.Lock()
	ln := s.ln
	s.ln = nil
	client := s.client
	s.mu.Unlock()

	if client != nil {
		client.Close()
	}
	if ln == nil {
		return nil
	}
	err := ln.Close()
	s.wg.Wait()
	return err
}

func (s *QMPServer) acceptLoop(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		if s.client != nil {
			s.mu.Unlock()
			conn.Close()
			continue
		}
		s.client = conn
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serveClient(conn)
	}
}

func (s *QMPServer) serveClient(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()
	defer s.releaseClient(conn)

	log.ModQMP.InfoZ("QMP client connected").String("addr", conn.RemoteAddr().String()).End()

	if _, err := conn.Write(Greeting()); err != nil {
		return
	}

	sess := NewQMPSession(s.Facade, s.Gate)
	var buf []byte
	tmp := make([]byte, 4096)
	for {
		n, err := conn.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
			for {
				obj, rest, ok := ExtractObject(buf)
				if !ok {
					break
				}
				buf = rest
				reply := sess.HandleObject(obj)
				if _, werr := conn.Write(reply); werr != nil {
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *QMPServer) releaseClient(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == conn {
		s.client = nil
	}
}
