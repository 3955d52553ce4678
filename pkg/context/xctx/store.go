package xctx

import "sync"

// Store 单个执行流的上下文槽位。
//
// 保存该流"当前"的 Fields，提供 Get/Replace/Restore 三个原语。
// 一个 Store 归一个执行流所有；派生 goroutine 应通过 Fork 获得
// 带快照的子槽位，而不是共享同一个 Store。
//
// 设计决策: 正确性依赖"每流独享槽位"而非互斥，但 Store 仍带一把小锁。
// 用户把同一个 ctx 直接传进子 goroutine（漏了 Fork）时，锁把后果
// 从数据竞争降级为语义上的字段串扰，便于用 -race 之外的手段定位问题。
type Store struct {
	mu      sync.Mutex
	current Fields
	seq     uint64
}

// tokenState Token 的消费标记。
// 通过指针在 Token 值拷贝间共享，保证"单次使用"语义。
type tokenState struct {
	consumed bool
}

// Token Replace 返回的恢复凭证。
//
// 不透明、单次使用：恢复即消费，重复恢复返回 ErrInvalidToken。
// 零值 Token 永远非法。
type Token struct {
	store *Store
	prev  Fields
	state *tokenState
	seq   uint64
}

// NewStore 创建空槽位。
func NewStore() *Store {
	return &Store{}
}

// Get 返回当前映射。
//
// 从未安装过任何映射时返回空映射（槽位在首次访问时惰性初始化）。
// 永不失败。返回值应视为只读。
func (s *Store) Get() Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		s.current = Fields{}
	}
	return s.current
}

// Replace 将 fields 安装为当前映射，返回指向先前状态的 Token。
//
// 永不失败。fields 可以为 nil（视为空映射）。
func (s *Store) Replace(fields Fields) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fields == nil {
		fields = Fields{}
	}
	if s.current == nil {
		s.current = Fields{}
	}
	prev := s.current
	s.current = fields
	s.seq++
	return Token{
		store: s,
		prev:  prev,
		state: &tokenState{},
		seq:   s.seq,
	}
}

// Restore 将当前映射恢复为 token 捕获的先前状态，并消费该 token。
//
// token 不属于本 Store、是零值、或已被消费时返回 ErrInvalidToken。
// 不强制校验 LIFO 顺序（见 ErrInvalidToken 的说明）。
func (s *Store) Restore(token Token) error {
	if token.store != s || token.state == nil {
		return ErrInvalidToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if token.state.consumed {
		return ErrInvalidToken
	}
	token.state.consumed = true
	s.current = token.prev
	return nil
}

// Reset 清空槽位，回到"从未安装"状态。
//
// 管理性操作，供测试在用例间强制复位；生产代码不应调用。
// 已发放但未消费的 Token 在 Reset 后仍可 Restore（会把映射带回旧快照），
// 测试复位场景下应丢弃旧 Token。
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.seq = 0
}
