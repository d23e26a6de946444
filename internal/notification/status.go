package notification

import "time"

// Evaluator は通知の期限切れ状態を日単位で判定する。
// 基準日と有効期限はどちらも同じタイムゾーンの日末に正規化して比較する。
type Evaluator struct {
	loc *time.Location
}

// NewEvaluator は指定したタイムゾーンで判定するEvaluatorを生成する。
// locがnilの場合はローカルタイムゾーンを使用する。
func NewEvaluator(loc *time.Location) Evaluator {
	if loc == nil {
		loc = time.Local
	}
	return Evaluator{loc: loc}
}

// Location は判定に使用するタイムゾーンを返す。
func (e Evaluator) Location() *time.Location {
	if e.loc == nil {
		return time.Local
	}
	return e.loc
}

// EndOfDay はtを含む日の最終時刻（23:59:59.999999999）を返す。
func (e Evaluator) EndOfDay(t time.Time) time.Time {
	local := t.In(e.Location())
	y, m, d := local.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), e.Location())
}

// IsExpired は基準日refに対してnが期限切れかどうかを返す。
// 有効期限がない通知は常に期限切れ。有効期限当日はまだ期限切れではない。
func (e Evaluator) IsExpired(ref time.Time, n *Notification) bool {
	return e.expiredAt(e.EndOfDay(ref), n)
}

// Annotate はすべての通知のExpiredを同じ基準日で設定する。
// スライスの要素をその場で書き換え、同じスライスを返す。
func (e Evaluator) Annotate(ref time.Time, notifications []Notification) []Notification {
	endOfRef := e.EndOfDay(ref)
	for i := range notifications {
		notifications[i].Expired = e.expiredAt(endOfRef, &notifications[i])
	}
	return notifications
}

func (e Evaluator) expiredAt(endOfRef time.Time, n *Notification) bool {
	if n.ExpirationDate == nil {
		return true
	}
	return endOfRef.After(e.EndOfDay(*n.ExpirationDate))
}
