package specification

import (
	"testing"

	"shopchat-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestByPairBuildsNormalizedPredicate(t *testing.T) {
	db := newDryRunDB(t)
	low := uuid.New()
	high := uuid.New()

	stmt := ByPair{UserAID: low, UserBID: high}.
		Apply(db.Model(&model.Conversation{})).
		Find(&[]model.Conversation{}).Statement

	assert.Contains(t, stmt.SQL.String(), "user_a_id = ? AND user_b_id = ?")
	assert.Contains(t, stmt.Vars, low)
	assert.Contains(t, stmt.Vars, high)
}

func TestByParticipantMatchesEitherSide(t *testing.T) {
	db := newDryRunDB(t)
	userId := uuid.New()

	stmt := ByParticipant{UserID: userId}.
		Apply(db.Model(&model.Conversation{})).
		Find(&[]model.Conversation{}).Statement

	assert.Contains(t, stmt.SQL.String(), "user_a_id = ? OR user_b_id = ?")
	assert.Contains(t, stmt.Vars, userId)
}

func TestByConversationIDScopesMessages(t *testing.T) {
	db := newDryRunDB(t)
	convId := uuid.New()

	stmt := ByConversationID{ConversationID: convId}.
		Apply(db.Model(&model.Message{})).
		Find(&[]model.Message{}).Statement

	assert.Contains(t, stmt.SQL.String(), "conversation_id = ?")
	assert.Contains(t, stmt.Vars, convId)
}

func TestByIDsBuildsInPredicate(t *testing.T) {
	db := newDryRunDB(t)
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	stmt := ByIDs{IDs: ids}.
		Apply(db.Model(&model.User{})).
		Find(&[]model.User{}).Statement

	assert.Contains(t, stmt.SQL.String(), "id IN")
}

func TestPaginationAppliesLimitAndOffset(t *testing.T) {
	db := newDryRunDB(t)

	stmt := Pagination{Limit: 20, Offset: 40}.
		Apply(db.Model(&model.Conversation{})).
		Find(&[]model.Conversation{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
}
