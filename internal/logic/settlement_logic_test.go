package logic

import (
	"sort"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/vnpay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashSecret = "RAOEXHYFYPOIJDOQRIQYMOABEPJQVJWX"

// signedCallback 构造一组带合法签名的回调参数
func signedCallback(txnRef, responseCode string) map[string]string {
	params := map[string]string{
		"vnp_TmnCode":       "2QXUI4J4",
		"vnp_Amount":        "20000000",
		"vnp_TxnRef":        txnRef,
		"vnp_ResponseCode":  responseCode,
		"vnp_TransactionNo": "14226112",
		"vnp_PayDate":       "20240601103512",
	}

	var names []string
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var pairs []string
	for _, name := range names {
		pairs = append(pairs, name+"="+params[name])
	}
	params["vnp_SecureHash"] = vnpay.HmacSHA512(testHashSecret, strings.Join(pairs, "&"))
	return params
}

func investmentRows(status model.InvestmentStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "investor_id", "project_id", "amount", "status", "transaction_code"}).
		AddRow(int64(7), int64(9), int64(5), int64(200000), string(status), "INV1717212600000ABCD1234")
}

func TestHandleCallback(t *testing.T) {
	const txnRef = "INV1717212600000ABCD1234"

	t.Run("invalid signature rejected before any lookup", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewSettlementLogic(db, testGateway(), nil)

		params := signedCallback(txnRef, "00")
		params["vnp_Amount"] = "99900000000"

		_, err := l.HandleCallback(params)
		assert.ErrorIs(t, err, vnpay.ErrInvalidSignature)
		// 验签失败时不触碰数据库
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown transaction code", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewSettlementLogic(db, testGateway(), nil)

		mock.ExpectQuery(`SELECT \* FROM "investments"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := l.HandleCallback(signedCallback(txnRef, "00"))
		assert.ErrorIs(t, err, ErrInvestmentNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success settles investment transaction and project together", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewSettlementLogic(db, testGateway(), nil)

		mock.ExpectQuery(`SELECT \* FROM "investments"`).
			WillReturnRows(investmentRows(model.InvestmentStatusPending))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "investments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "transactions" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "projects" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		result, err := l.HandleCallback(signedCallback(txnRef, "00"))
		require.NoError(t, err)
		assert.True(t, result.Settled)
		assert.False(t, result.Duplicate)
		assert.Equal(t, int64(5), result.ProjectId)
		assert.Equal(t, int64(200000), result.Amount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second delivery is a no-op", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewSettlementLogic(db, testGateway(), nil)

		// 记录已经是success，直接短路，不开事务
		mock.ExpectQuery(`SELECT \* FROM "investments"`).
			WillReturnRows(investmentRows(model.InvestmentStatusSuccess))

		result, err := l.HandleCallback(signedCallback(txnRef, "00"))
		require.NoError(t, err)
		assert.True(t, result.Settled)
		assert.True(t, result.Duplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent delivery credits exactly once", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewSettlementLogic(db, testGateway(), nil)

		// 查询时还是pending，但条件更新时另一次投递已经完成迁移
		mock.ExpectQuery(`SELECT \* FROM "investments"`).
			WillReturnRows(investmentRows(model.InvestmentStatusPending))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "investments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		result, err := l.HandleCallback(signedCallback(txnRef, "00"))
		require.NoError(t, err)
		assert.True(t, result.Settled)
		assert.True(t, result.Duplicate)
		// 项目计数器没有任何第二次累加
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure code leaves ledger untouched", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewSettlementLogic(db, testGateway(), nil)

		mock.ExpectQuery(`SELECT \* FROM "investments"`).
			WillReturnRows(investmentRows(model.InvestmentStatusPending))

		// 用户取消：不动账
		result, err := l.HandleCallback(signedCallback(txnRef, "24"))
		require.NoError(t, err)
		assert.False(t, result.Settled)
		assert.False(t, result.Duplicate)
		assert.Equal(t, "24", result.ResponseCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
