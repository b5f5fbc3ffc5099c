package broadcast

import "sync"

// Event 最小限のペイロード。クライアントは受信したらリストを取り直す
type Event struct {
	Kind   string `json:"kind"`
	Action string `json:"action"`
}

// ActionRefresh イベントの種類によらずクライアントの動作は再取得のみ
const ActionRefresh = "refresh"

const subscriberBuffer = 8

type subscriber struct {
	ch   chan Event
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// topic 1ファミリー分の購読者。ロックはトピック単位で、
// あるファミリーへの配信が他のファミリーをブロックしない
type topic struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// Hub ファミリーごとの購読チャネルを管理する。シングルトンではなく
// 生成してハンドラに注入する
type Hub struct {
	mu     sync.RWMutex
	topics map[string]*topic
	closed bool
}

func NewHub() *Hub {
	return &Hub{topics: map[string]*topic{}}
}

// Subscribe 購読チャネルと解除関数を返す。解除関数は何度呼んでも安全で、
// 接続が閉じたときに呼ぶのが唯一の解除経路
func (h *Hub) Subscribe(familyID string) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	t, ok := h.topics[familyID]
	if !ok {
		t = &topic{subs: map[*subscriber]struct{}{}}
		h.topics[familyID] = t
	}
	// 登録はh.muを持ったまま行う。直後にトピックが外されると迷子になるため
	t.mu.Lock()
	t.subs[sub] = struct{}{}
	t.mu.Unlock()
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if cur, ok := h.topics[familyID]; ok && cur == t {
			t.mu.Lock()
			delete(t.subs, sub)
			if len(t.subs) == 0 {
				delete(h.topics, familyID)
			}
			t.mu.Unlock()
		}
		h.mu.Unlock()
		sub.close()
	}
	return sub.ch, cancel
}

// Publish 対象ファミリーの全購読者へ送る。送信できない購読者は
// 壊れたものとして外す（書き込み失敗時の自己修復）
func (h *Hub) Publish(familyID string, kind string) {
	h.mu.RLock()
	t, ok := h.topics[familyID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	ev := Event{Kind: kind, Action: ActionRefresh}

	t.mu.Lock()
	for sub := range t.subs {
		select {
		case sub.ch <- ev:
		default:
			// バッファが詰まった購読者は読んでいない。切り離して閉じる
			delete(t.subs, sub)
			sub.close()
		}
	}
	t.mu.Unlock()
}

// Close シャットダウン時に全購読チャネルを閉じる
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, t := range h.topics {
		t.mu.Lock()
		for sub := range t.subs {
			sub.close()
		}
		t.subs = map[*subscriber]struct{}{}
		t.mu.Unlock()
	}
	h.topics = map[string]*topic{}
}
