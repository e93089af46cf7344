package container

import (
	"time"

	"github.com/arkcrm/automation/collab"
	"github.com/arkcrm/automation/config"
	"github.com/arkcrm/automation/persistence"
	"github.com/arkcrm/automation/persistence/inmem"
	rd "github.com/arkcrm/automation/persistence/redis"
)

type DIContainer struct {
	initialized         bool
	workflowDao         persistence.WorkflowDao
	executionDao        persistence.ExecutionDao
	recordDao           persistence.RecordDao
	taskDao             persistence.TaskDao
	notificationDao     persistence.NotificationDao
	notificationService collab.NotificationService
	emailSender         collab.EmailSender
	telegramClient      *collab.TelegramClient
	webhookClient       *collab.WebhookClient
}

func NewDiContainer() *DIContainer {
	return &DIContainer{}
}

func (d *DIContainer) setInitialized() {
	d.initialized = true
}

func (d *DIContainer) Init(conf config.Config) {
	defer d.setInitialized()

	switch conf.StorageType {
	case config.STORAGE_TYPE_REDIS:
		rdConf := rd.Config{
			Addrs:       conf.RedisConfig.Addrs,
			Namespace:   conf.RedisConfig.Namespace,
			HistorySize: conf.ExecutionHistorySize,
		}
		d.workflowDao = rd.NewRedisWorkflowDao(rdConf)
		d.executionDao = rd.NewRedisExecutionDao(rdConf)
		d.recordDao = rd.NewRedisRecordDao(rdConf)
		d.taskDao = rd.NewRedisTaskDao(rdConf)
		d.notificationDao = rd.NewRedisNotificationDao(rdConf)
	default:
		d.workflowDao = inmem.NewInMemWorkflowDao()
		d.executionDao = inmem.NewInMemExecutionDao()
		d.recordDao = inmem.NewInMemRecordDao()
		d.taskDao = inmem.NewInMemTaskDao()
		d.notificationDao = inmem.NewInMemNotificationDao()
	}
	d.notificationService = collab.NewStoredNotificationService(d.notificationDao)

	timeout := time.Duration(conf.HttpTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	d.telegramClient = collab.NewTelegramClient(conf.TelegramConfig.BotToken, conf.TelegramConfig.ApiUrl, timeout)
	d.webhookClient = collab.NewWebhookClient(timeout)
}

func (d *DIContainer) GetWorkflowDao() persistence.WorkflowDao {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.workflowDao
}

func (d *DIContainer) GetExecutionDao() persistence.ExecutionDao {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.executionDao
}

func (d *DIContainer) GetRecordDao() persistence.RecordDao {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.recordDao
}

func (d *DIContainer) GetTaskDao() persistence.TaskDao {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.taskDao
}

func (d *DIContainer) GetNotificationDao() persistence.NotificationDao {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.notificationDao
}

func (d *DIContainer) GetNotificationService() collab.NotificationService {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.notificationService
}

func (d *DIContainer) GetEmailSender() collab.EmailSender {
	return d.emailSender
}

func (d *DIContainer) GetTelegramClient() *collab.TelegramClient {
	return d.telegramClient
}

func (d *DIContainer) GetWebhookClient() *collab.WebhookClient {
	return d.webhookClient
}

// SetEmailSender plugs in the email collaborator; the engine treats a nil
// sender as a per-action configuration error.
func (d *DIContainer) SetEmailSender(sender collab.EmailSender) {
	d.emailSender = sender
}

func (d *DIContainer) SetNotificationService(service collab.NotificationService) {
	d.notificationService = service
}

func (d *DIContainer) SetTelegramClient(client *collab.TelegramClient) {
	d.telegramClient = client
}

func (d *DIContainer) SetRecordDao(dao persistence.RecordDao) {
	d.recordDao = dao
}
