package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndt123-fs/Code-Gym/internal/logger"
	"github.com/ndt123-fs/Code-Gym/internal/metrics"
	"github.com/ndt123-fs/Code-Gym/internal/plan"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Type    string    `json:"type"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

// Send queues a mail job. Delivery is asynchronous and best-effort: callers
// treat a returned error as a warning, never as an operation failure.
func (s *Service) Send(ctx context.Context, to, name, subject, body, mailType string) error {
	job := EmailJob{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Type:    mailType,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		metrics.RecordEmail(mailType, "queue_failed")
		return err
	}

	logger.Infof("Email queued: %s to %s", subject, to)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email service stopped")
			return
		default:
			s.processNext(ctx)
			s.QueueLength(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "success")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.EmailQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendRegistrationConfirmation(ctx context.Context, to, name, planName string, amount int64, validUntil time.Time) error {
	subject := "Xác nhận đăng ký - Code Gym"
	body := fmt.Sprintf(`Xin chào %s,

Bạn đã đăng ký gói %s thành công.

Số tiền: %s
Thẻ hội viên có hiệu lực đến: %s

Hẹn gặp bạn tại phòng tập!

- Code Gym`, name, planName, plan.FormatVND(amount), validUntil.Format("02/01/2006"))

	return s.Send(ctx, to, name, subject, body, "registration_confirmation")
}

func (s *Service) SendRenewalReceipt(ctx context.Context, to, name, planName string, amount int64, validUntil time.Time) error {
	subject := "Xác nhận gia hạn - Code Gym"
	body := fmt.Sprintf(`Xin chào %s,

Bạn đã gia hạn gói %s thành công.

Số tiền: %s
Thẻ hội viên có hiệu lực đến: %s

Cảm ơn bạn đã đồng hành cùng Code Gym!

- Code Gym`, name, planName, plan.FormatVND(amount), validUntil.Format("02/01/2006"))

	return s.Send(ctx, to, name, subject, body, "renewal_receipt")
}

func (s *Service) SendExpiryReminder(ctx context.Context, to, name string, validUntil time.Time) error {
	subject := "Nhắc nhở gia hạn - Code Gym"
	body := fmt.Sprintf(`Xin chào %s,

Thẻ hội viên của bạn sẽ hết hạn vào ngày %s.
Vui lòng đến quầy lễ tân hoặc liên hệ với chúng tôi để gia hạn.

- Code Gym`, name, validUntil.Format("02/01/2006"))

	return s.Send(ctx, to, name, subject, body, "expiry_reminder")
}
