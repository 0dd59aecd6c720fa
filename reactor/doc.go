// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides descriptor readiness notification for the
// gateway's asynchronous adapters: epoll on Linux, poll(2) on other unix
// systems.
package reactor
