// Package worker 提供背景工作用的固定大小 worker pool，
// 目前用於定期清除過期 session。
package worker

import (
	"fmt"
	"log/slog"
	"sync"
)

// Task 交給 pool 執行的一件工作
type Task func()

// Pool 固定數量 worker 的工作池
type Pool interface {
	// Submit 會等到有 worker 接手；pool 停止後回傳 false
	Submit(Task) bool
	Stop()
}

// NewPool 建立 n 個 worker；n<=0 時使用 1
func NewPool(n int, logger *slog.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &pool{
		jobs:   make(chan Task),
		quit:   make(chan struct{}),
		logger: logger,
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case job := <-p.jobs:
					p.run(job)
				case <-p.quit:
					return
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs   chan Task
	quit   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
	logger *slog.Logger
}

func (p *pool) Submit(t Task) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobs <- t:
		return true
	case <-p.quit:
		return false
	}
}

// run 執行單一工作，panic 只記錄不擴散
func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panicked", "panic", fmt.Sprint(r))
		}
	}()
	job()
}

// Stop 等待執行中的工作完成；可重複呼叫
func (p *pool) Stop() {
	p.once.Do(func() { close(p.quit) })
	p.wg.Wait()
}
