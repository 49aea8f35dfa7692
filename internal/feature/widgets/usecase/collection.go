package usecase

import (
	"fmt"
	"strings"

	"stock_dashboard/internal/feature/widgets/domain/entity"
)

// Collection はウィジェットの順序付きリストです。
// IDは単調増加カウンタで採番し、コレクションの生存期間中に再利用しません。
// 並行利用には対応していないため、所有する画面側で排他制御します。
type Collection struct {
	widgets []entity.Widget
	lastID  int64
}

// NewCollection は指定された種別のウィジェットをID 1から順に持つCollectionを生成します。
func NewCollection(types ...entity.WidgetType) *Collection {
	c := &Collection{widgets: make([]entity.Widget, 0, len(types))}
	for _, t := range types {
		c.widgets = append(c.widgets, c.next(t))
	}
	return c
}

// NewDefaultCollection はStocksとNewsの2つを持つ初期状態のCollectionを生成します。
func NewDefaultCollection() *Collection {
	return NewCollection(entity.WidgetStocks, entity.WidgetNews)
}

func (c *Collection) next(t entity.WidgetType) entity.Widget {
	c.lastID++
	return entity.Widget{ID: c.lastID, Type: t}
}

// Add は新しいIDでウィジェットを末尾に追加します。
// 種別は前後の空白を除去し、空の場合はErrInvalidWidgetTypeを返します。
func (c *Collection) Add(t entity.WidgetType) (entity.Widget, error) {
	t = entity.WidgetType(strings.TrimSpace(string(t)))
	if t == "" {
		return entity.Widget{}, ErrInvalidWidgetType
	}
	w := c.next(t)
	c.widgets = append(c.widgets, w)
	return w, nil
}

// Remove はIDが一致するウィジェットを削除し、削除したかどうかを返します。
// 存在しないIDは何もしません。
func (c *Collection) Remove(id int64) bool {
	for i, w := range c.widgets {
		if w.ID == id {
			c.widgets = append(c.widgets[:i], c.widgets[i+1:]...)
			return true
		}
	}
	return false
}

// Reorder は from 番目のウィジェットを取り出して to 番目に挿入します。
// どちらかのインデックスが範囲外の場合はErrWidgetIndexOutOfRangeを返し、順序は変更しません。
func (c *Collection) Reorder(from, to int) error {
	n := len(c.widgets)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: from=%d to=%d len=%d", ErrWidgetIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	w := c.widgets[from]
	if from < to {
		copy(c.widgets[from:to], c.widgets[from+1:to+1])
	} else {
		copy(c.widgets[to+1:from+1], c.widgets[to:from])
	}
	c.widgets[to] = w
	return nil
}

// List returns a copy of the widgets in display order.
func (c *Collection) List() []entity.Widget {
	return append([]entity.Widget{}, c.widgets...)
}

// Len returns the number of widgets.
func (c *Collection) Len() int {
	return len(c.widgets)
}
