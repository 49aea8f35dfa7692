// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/symbollist/usecase"
)

// SymbolModel は symbols テーブルのGORMモデルです。
type SymbolModel struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Price     *float64  `gorm:"default:null"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (SymbolModel) TableName() string {
	return "symbols"
}

// ToEntity はGORMモデルをドメインエンティティに変換します。
func (m *SymbolModel) ToEntity() entity.Symbol {
	return entity.Symbol{Code: m.Code, Price: m.Price}
}

// symbolGorm はSymbolSourceとSymbolStoreのGORM実装です。
type symbolGorm struct {
	db *gorm.DB
}

var (
	_ usecase.SymbolSource = (*symbolGorm)(nil)
	_ usecase.SymbolStore  = (*symbolGorm)(nil)
)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListAll はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListAll(ctx context.Context) ([]entity.Symbol, error) {
	var rows []SymbolModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Symbol, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}

// UpsertBatch は銘柄コードをキーに一括で挿入または更新します。
// sort_key にはバッチ内の位置を設定し、上流の並び順を保持します。
// バッチに含まれない銘柄は is_active=false にします。空のバッチでは何もしません。
func (r *symbolGorm) UpsertBatch(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	ms := make([]SymbolModel, 0, len(symbols))
	codes := make([]string, 0, len(symbols))
	for i, s := range symbols {
		ms = append(ms, SymbolModel{
			Code:     s.Code,
			Price:    s.Price,
			IsActive: true,
			SortKey:  i,
		})
		codes = append(codes, s.Code)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "is_active", "sort_key", "updated_at"}),
		}).CreateInBatches(&ms, 500).Error; err != nil {
			return err
		}
		// 上流から消えた銘柄は一覧に出さない
		return tx.Model(&SymbolModel{}).
			Where("is_active = ? AND code NOT IN ?", true, codes).
			Update("is_active", false).Error
	})
}
