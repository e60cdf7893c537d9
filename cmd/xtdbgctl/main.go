// Command xtdbgctl is a small QMP scripting client: it dials a running
// xtdbgd instance, performs the capability handshake, sends one JSON
// command, and prints the reply.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Addr    string `name:"addr" help:"QMP server address." default:"127.0.0.1:4444"`
	Execute string `arg:"" name:"command" help:"QMP command name to execute, e.g. query-status."`
	Args    string `arg:"" name:"args" help:"JSON object of arguments, e.g. '{\"address\":0,\"size\":16}'." optional:""`
	Retries int    `name:"retries" help:"Number of dial retries before giving up." default:"5"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("xtdbgctl"),
		kong.Description("Send a single QMP command to an xtdbgd server."))

	conn, err := dialWithRetry(cli.Addr, cli.Retries)
	checkf(err, "failed to connect to %s", cli.Addr)
	defer conn.Close()

	r := bufio.NewReader(conn)

	greeting, err := r.ReadString('\n')
	checkf(err, "failed to read QMP greeting")
	fmt.Fprintln(os.Stderr, "< "+strings.TrimSpace(greeting))

	capsCmd := `{"execute":"qmp_capabilities"}` + "\n"
	_, err = conn.Write([]byte(capsCmd))
	checkf(err, "failed to negotiate capabilities")
	reply, err := r.ReadString('\n')
	checkf(err, "failed to read capabilities reply")
	fmt.Fprintln(os.Stderr, "< "+strings.TrimSpace(reply))

	argsJSON := cli.Args
	if argsJSON == "" {
		argsJSON = "{}"
	}
	cmd := fmt.Sprintf(`{"execute":%q,"arguments":%s}`+"\n", cli.Execute, argsJSON)
	fmt.Fprintln(os.Stderr, "> "+strings.TrimSpace(cmd))
	_, err = conn.Write([]byte(cmd))
	checkf(err, "failed to send command")

	reply, err = r.ReadString('\n')
	checkf(err, "failed to read command reply")
	fmt.Println(strings.TrimSpace(reply))
}

func dialWithRetry(addr string, maxRetries int) (net.Conn, error) {
	var (
		conn net.Conn
		err  error
	)
	for i := 0; i < maxRetries; i++ {
		conn, err = net.Dial("tcp", addr)
		if err == nil {
			return conn, nil
		}
		fmt.Fprintln(os.Stderr, "dial tcp failed, retry "+strconv.Itoa(i)+": "+err.Error())
		time.Sleep(250 * time.Millisecond)
	}
	return nil, fmt.Errorf("dial failed after %d retries: %w", maxRetries, err)
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "fatal error:\n\t%s: %s\n", fmt.Sprintf(format, args...), err)
	os.Exit(1)
}
