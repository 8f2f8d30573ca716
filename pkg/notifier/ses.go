// Package notifier e-mails buyers about their orders through AWS SES.
package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
)

// Sender is the subset of the SES client used here.
type Sender interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Recipients resolves a buyer id to a name and e-mail address.
type Recipients interface {
	FindByID(id uint) (*entity.User, error)
}

type EmailNotifier struct {
	client  Sender
	users   Recipients
	sender  string
	timeout time.Duration
}

type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SenderEmail     string
}

// NewSESNotifier builds an SES-backed notifier; static credentials are used when given.
func NewSESNotifier(cfg Config, users Recipients) (*EmailNotifier, error) {
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("sender email address is not configured")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}
	return NewEmailNotifier(ses.NewFromConfig(awsCfg), users, cfg.SenderEmail), nil
}

func NewEmailNotifier(client Sender, users Recipients, sender string) *EmailNotifier {
	return &EmailNotifier{client: client, users: users, sender: sender, timeout: 10 * time.Second}
}

// PublishOrderEvent sends the buyer an e-mail in the background.
func (n *EmailNotifier) PublishOrderEvent(evt services.OrderEvent) {
	go func() {
		if err := n.Send(evt); err != nil {
			log.Printf("order %d: e-mail notification failed: %v", evt.OrderID, err)
		}
	}()
}

func (n *EmailNotifier) Send(evt services.OrderEvent) error {
	buyer, err := n.users.FindByID(evt.BuyerID)
	if err != nil {
		return fmt.Errorf("load buyer: %w", err)
	}
	if buyer.Email == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	subject, text := Compose(evt, buyer.Name)

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	_, err = n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(n.sender),
		Destination: &types.Destination{ToAddresses: []string{buyer.Email}},
		Message: &types.Message{
			Subject: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(text)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Compose builds the subject and plain-text body for an order event.
func Compose(evt services.OrderEvent, name string) (string, string) {
	if evt.Type == services.EventOrderPlaced {
		return fmt.Sprintf("Order #%d placed", evt.OrderID),
			fmt.Sprintf("Hi %s,\n\nThanks for your order #%d. Total: %s.\nWe'll let you know when a shop accepts it.\n",
				name, evt.OrderID, evt.TotalAmount.StringFixed(2))
	}

	line := map[entity.OrderStatus]string{
		entity.StatusAccepted:       "has been accepted by the shop",
		entity.StatusPreparing:      "is being prepared",
		entity.StatusOutForDelivery: "is out for delivery",
		entity.StatusDelivered:      "has been delivered",
		entity.StatusCancelled:      "has been cancelled",
	}[evt.Status]
	if line == "" {
		line = "is now " + string(evt.Status)
	}
	return fmt.Sprintf("Order #%d: %s", evt.OrderID, evt.Status),
		fmt.Sprintf("Hi %s,\n\nYour order #%d %s.\n", name, evt.OrderID, line)
}
