package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
)

// CollectionName colección de clientes.
const CollectionName = "clientes"

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre una colección MongoDB.
type CustomerRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewCustomerRepository construye el adaptador sobre database.clientes.
func NewCustomerRepository(client *mongo.Client, database string) *CustomerRepo {
	return &CustomerRepo{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
		now:    time.Now,
	}
}

// EnsureIndexes crea los índices únicos de email y CPF y el índice por fecha de cadastro.
// Se llama una vez al arrancar; es idempotente.
func (r *CustomerRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: fieldEmail, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: fieldTaxID, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("cpf_unique"),
		},
		{
			Keys:    bson.D{{Key: fieldRegisteredAt, Value: -1}},
			Options: options.Index().SetName("dataCadastro_desc"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("crear índices de clientes: %w", err)
	}
	return nil
}

func (r *CustomerRepo) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: fieldRegisteredAt, Value: -1}, {Key: fieldID, Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer cur.Close(ctx)

	list := make([]*entity.Customer, 0)
	for cur.Next(ctx) {
		var doc customerDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decodificar cliente: %w", err)
		}
		list = append(list, doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return list, nil
}

func (r *CustomerRepo) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc customerDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: fieldID, Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *CustomerRepo) FindByEmailOrTaxID(ctx context.Context, email, taxID, excludeID string) (*entity.Customer, error) {
	var doc customerDocument
	err := r.coll.FindOne(ctx, uniquenessFilter(email, taxID, excludeID)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar cliente por email o cpf: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	doc := toDocument(customer)
	doc.ID = primitive.NewObjectID()
	// MongoDB guarda fechas con precisión de milisegundos
	doc.RegisteredAt = r.now().UTC().Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar cliente: %w", err)
	}
	customer.ID = doc.ID.Hex()
	customer.RegisteredAt = doc.RegisteredAt
	return nil
}

func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	oid, err := primitive.ObjectIDFromHex(customer.ID)
	if err != nil {
		return domain.ErrNotFound
	}
	update := bson.D{{Key: "$set", Value: toMutableFields(customer)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc customerDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: fieldID, Value: oid}}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("actualizar cliente: %w", err)
	}
	*customer = *doc.toEntity()
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: fieldID, Value: oid}})
	if err != nil {
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// uniquenessFilter: {$or: [{email}, {cpf}], _id: {$ne: excludeID}}. Un excludeID que no es
// ObjectID no puede coincidir con ningún documento, así que se omite.
func uniquenessFilter(email, taxID, excludeID string) bson.D {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: fieldEmail, Value: email}},
		bson.D{{Key: fieldTaxID, Value: taxID}},
	}}}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter = append(filter, bson.E{Key: fieldID, Value: bson.D{{Key: "$ne", Value: oid}}})
	}
	return filter
}
