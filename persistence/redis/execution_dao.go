package redis

import (
	"context"

	"github.com/arkcrm/automation/logger"
	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/persistence"
	"github.com/arkcrm/automation/util"
	"go.uber.org/zap"
)

const EXECUTION_LOG string = "EXEC"
const EXECUTION_RECENT string = "recent"

var _ persistence.ExecutionDao = new(redisExecutionDao)

type redisExecutionDao struct {
	*baseDao
	recordEncDec util.EncoderDecoder[model.ExecutionRecord]
}

func NewRedisExecutionDao(conf Config) *redisExecutionDao {
	return &redisExecutionDao{
		baseDao:      newBaseDao(conf),
		recordEncDec: util.NewJsonEncoderDecoder[model.ExecutionRecord](),
	}
}

// Save appends to the per-rule log and the recent log. Only the recent log
// is trimmed; the per-rule log is the durable audit trail.
func (red *redisExecutionDao) Save(record model.ExecutionRecord) error {
	ctx := context.Background()
	data, err := red.recordEncDec.Encode(record)
	if err != nil {
		return err
	}
	ruleKey := red.getNamespaceKey(EXECUTION_LOG, record.RuleId)
	if err := red.redisClient.RPush(ctx, ruleKey, string(data)).Err(); err != nil {
		logger.Error("error in saving execution record", zap.String("rule", record.RuleId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	recentKey := red.getNamespaceKey(EXECUTION_LOG, EXECUTION_RECENT)
	if err := red.redisClient.RPush(ctx, recentKey, string(data)).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if err := red.redisClient.LTrim(ctx, recentKey, -red.historySize, -1).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (red *redisExecutionDao) GetByRule(ruleId string, limit int64) ([]model.ExecutionRecord, error) {
	return red.getRange(red.getNamespaceKey(EXECUTION_LOG, ruleId), limit)
}

func (red *redisExecutionDao) GetRecent(limit int64) ([]model.ExecutionRecord, error) {
	return red.getRange(red.getNamespaceKey(EXECUTION_LOG, EXECUTION_RECENT), limit)
}

func (red *redisExecutionDao) getRange(key string, limit int64) ([]model.ExecutionRecord, error) {
	ctx := context.Background()
	items, err := red.redisClient.LRange(ctx, key, -limit, -1).Result()
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	records := make([]model.ExecutionRecord, 0, len(items))
	for _, item := range items {
		record, err := red.recordEncDec.Decode([]byte(item))
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}
