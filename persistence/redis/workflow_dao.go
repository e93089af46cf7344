package redis

import (
	"context"
	"encoding/json"

	rd "github.com/go-redis/redis/v9"

	"github.com/arkcrm/automation/logger"
	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/persistence"
	"github.com/arkcrm/automation/util"
	"go.uber.org/zap"
)

const RULE_DEF string = "RULE"
const RULE_VARS string = "RULE_VARS"

var _ persistence.WorkflowDao = new(redisWorkflowDao)

type redisWorkflowDao struct {
	*baseDao
	ruleEncDec util.EncoderDecoder[model.Rule]
}

func NewRedisWorkflowDao(conf Config) *redisWorkflowDao {
	return &redisWorkflowDao{
		baseDao:    newBaseDao(conf),
		ruleEncDec: util.NewJsonEncoderDecoder[model.Rule](),
	}
}

func (rwd *redisWorkflowDao) Save(rule model.Rule) error {
	key := rwd.getNamespaceKey(RULE_DEF)
	ctx := context.Background()
	data, err := rwd.ruleEncDec.Encode(rule)
	if err != nil {
		return err
	}
	if err := rwd.redisClient.HSet(ctx, key, []string{rule.Id, string(data)}).Err(); err != nil {
		logger.Error("error in saving rule", zap.String("rule", rule.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rwd *redisWorkflowDao) Get(id string) (*model.Rule, error) {
	key := rwd.getNamespaceKey(RULE_DEF)
	ctx := context.Background()
	ruleStr, err := rwd.redisClient.HGet(ctx, key, id).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Kind: "rule", Id: id}
	}
	if err != nil {
		logger.Error("error in getting rule", zap.String("rule", id), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rwd.ruleEncDec.Decode([]byte(ruleStr))
}

func (rwd *redisWorkflowDao) Delete(id string) error {
	ctx := context.Background()
	if err := rwd.redisClient.HDel(ctx, rwd.getNamespaceKey(RULE_DEF), id).Err(); err != nil {
		logger.Error("error in deleting rule", zap.String("rule", id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if err := rwd.redisClient.HDel(ctx, rwd.getNamespaceKey(RULE_VARS), id).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rwd *redisWorkflowDao) GetByObjectAndTrigger(objectId string, trigger model.TriggerType) ([]model.Rule, error) {
	key := rwd.getNamespaceKey(RULE_DEF)
	ctx := context.Background()
	all, err := rwd.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		logger.Error("error in listing rules", zap.String("object", objectId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	rules := make([]model.Rule, 0)
	for _, ruleStr := range all {
		rule, err := rwd.ruleEncDec.Decode([]byte(ruleStr))
		if err != nil {
			logger.Warn("skipping undecodable rule", zap.Error(err))
			continue
		}
		if rule.Active && rule.ObjectId == objectId && rule.Trigger == trigger {
			rules = append(rules, *rule)
		}
	}
	return rules, nil
}

func (rwd *redisWorkflowDao) SaveVariables(ruleId string, variables []string) error {
	key := rwd.getNamespaceKey(RULE_VARS)
	ctx := context.Background()
	data, err := json.Marshal(variables)
	if err != nil {
		return err
	}
	if err := rwd.redisClient.HSet(ctx, key, []string{ruleId, string(data)}).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rwd *redisWorkflowDao) GetVariables(ruleId string) ([]string, error) {
	key := rwd.getNamespaceKey(RULE_VARS)
	ctx := context.Background()
	varsStr, err := rwd.redisClient.HGet(ctx, key, ruleId).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Kind: "rule variables", Id: ruleId}
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	var variables []string
	if err := json.Unmarshal([]byte(varsStr), &variables); err != nil {
		return nil, err
	}
	return variables, nil
}
