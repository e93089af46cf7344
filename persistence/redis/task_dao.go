package redis

import (
	"context"

	rd "github.com/go-redis/redis/v9"

	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/persistence"
	"github.com/arkcrm/automation/util"
)

const TASK_KEY string = "TASK"

var _ persistence.TaskDao = new(redisTaskDao)

type redisTaskDao struct {
	*baseDao
	taskEncDec util.EncoderDecoder[model.Task]
}

func NewRedisTaskDao(conf Config) *redisTaskDao {
	return &redisTaskDao{
		baseDao:    newBaseDao(conf),
		taskEncDec: util.NewJsonEncoderDecoder[model.Task](),
	}
}

func (rtd *redisTaskDao) Save(task model.Task) error {
	key := rtd.getNamespaceKey(TASK_KEY)
	ctx := context.Background()
	data, err := rtd.taskEncDec.Encode(task)
	if err != nil {
		return err
	}
	if err := rtd.redisClient.HSet(ctx, key, []string{task.Id, string(data)}).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rtd *redisTaskDao) Get(id string) (*model.Task, error) {
	key := rtd.getNamespaceKey(TASK_KEY)
	ctx := context.Background()
	taskStr, err := rtd.redisClient.HGet(ctx, key, id).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Kind: "task", Id: id}
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rtd.taskEncDec.Decode([]byte(taskStr))
}
