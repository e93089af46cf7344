package redis

import (
	"context"
	"time"

	rd "github.com/go-redis/redis/v9"

	"github.com/arkcrm/automation/logger"
	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/persistence"
	"github.com/arkcrm/automation/util"
	"go.uber.org/zap"
)

const RECORD_KEY string = "RECORD"

var _ persistence.RecordDao = new(redisRecordDao)

type redisRecordDao struct {
	*baseDao
	recordEncDec util.EncoderDecoder[model.Record]
}

func NewRedisRecordDao(conf Config) *redisRecordDao {
	return &redisRecordDao{
		baseDao:      newBaseDao(conf),
		recordEncDec: util.NewJsonEncoderDecoder[model.Record](),
	}
}

func (rrd *redisRecordDao) Save(objectId string, record model.Record) error {
	key := rrd.getNamespaceKey(RECORD_KEY, objectId)
	ctx := context.Background()
	data, err := rrd.recordEncDec.Encode(record)
	if err != nil {
		return err
	}
	if err := rrd.redisClient.HSet(ctx, key, []string{record.Id, string(data)}).Err(); err != nil {
		logger.Error("error in saving record", zap.String("record", record.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rrd *redisRecordDao) Get(objectId string, recordId string) (*model.Record, error) {
	key := rrd.getNamespaceKey(RECORD_KEY, objectId)
	ctx := context.Background()
	recordStr, err := rrd.redisClient.HGet(ctx, key, recordId).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Kind: "record", Id: recordId}
	}
	if err != nil {
		logger.Error("error in getting record", zap.String("record", recordId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rrd.recordEncDec.Decode([]byte(recordStr))
}

// UpdateField is read-modify-write on the whole record value; concurrent
// writers are last-write-wins per the store's HSET semantics.
func (rrd *redisRecordDao) UpdateField(objectId string, recordId string, field string, value any) error {
	record, err := rrd.Get(objectId, recordId)
	if err != nil {
		return err
	}
	if record.Data == nil {
		record.Data = make(map[string]any)
	}
	record.Data[field] = value
	record.UpdatedAt = time.Now()
	return rrd.Save(objectId, *record)
}
