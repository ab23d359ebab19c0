package internal

import (
	"context"
	"fmt"
	"log"
	"time"
	"vinti4/config"
	"vinti4/entity"
	"vinti4/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionLog     = "payment_log"
	collectionForms   = "payment_forms"
	collectionResults = "payment_results"
)

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
}

// formRecord is a prepared form as stored; the merchant reference is the lookup key.
type formRecord struct {
	MerchantRef string            `bson:"merchant_ref"`
	PostUrl     string            `bson:"post_url"`
	Fields      map[string]string `bson:"fields"`
	Time        time.Time         `bson:"time"`
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client, nil
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(ctx context.Context, connection *mongo.Client) {
	err := connection.Disconnect(ctx)
	if err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

func (m *MongoDB) WriteLogMessage(data services.Data) error {
	connection, err := m.connect(m.ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(m.ctx, connection)

	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(m.ctx, data)
	return err
}

func (m *MongoDB) SavePaymentForm(ctx context.Context, merchantRef string, form *entity.PaymentForm) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	record := formRecord{
		MerchantRef: merchantRef,
		PostUrl:     form.PostUrl,
		Fields:      form.Fields,
		Time:        time.Now(),
	}
	filter := bson.D{{Key: "merchant_ref", Value: merchantRef}}
	set := bson.M{"$set": record}
	collection := connection.Database(m.database).Collection(collectionForms)
	_, err = collection.UpdateOne(ctx, filter, set, options.Update().SetUpsert(true))
	return err
}

func (m *MongoDB) SavePaymentResult(ctx context.Context, result *entity.PaymentResult) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionResults)
	_, err = collection.InsertOne(ctx, result)
	return err
}

// GetPaymentResult returns the latest result stored for a merchant reference.
func (m *MongoDB) GetPaymentResult(ctx context.Context, merchantRef string) (*entity.PaymentResult, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionResults)
	filter := bson.D{{Key: "merchant_ref", Value: merchantRef}}
	opt := options.FindOne().SetSort(bson.D{{Key: "time", Value: -1}})
	var result entity.PaymentResult
	if err = collection.FindOne(ctx, filter, opt).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
