package main

import (
	"fmt"
	"io"
	"net/http"
)

// healthcheckExitCode pings the running server and returns a process
// exit code, so the binary can be its own healthcheck tool.
func (a *postPilot) healthcheckExitCode() int {
	req, err := http.NewRequest(http.MethodGet, a.cfg.Server.PublicAddress+"/ping", nil)
	if err != nil {
		fmt.Println(err.Error())
		return 1
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		fmt.Println(err.Error())
		return 1
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 1
	}
	return 0
}
