package model

import (
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateText is a year or date kept as text. Catalog documents store these as
// strings, numbers or BSON dates; all of them decode.
type DateText string

func (d *DateText) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*d = DateText(rv.StringValue())
	case bsontype.Int32:
		*d = DateText(strconv.FormatInt(int64(rv.Int32()), 10))
	case bsontype.Int64:
		*d = DateText(strconv.FormatInt(rv.Int64(), 10))
	case bsontype.Double:
		*d = DateText(strconv.FormatFloat(rv.Double(), 'f', -1, 64))
	case bsontype.DateTime:
		*d = DateText(rv.Time().UTC().Format(time.DateOnly))
	case bsontype.Null, bsontype.Undefined:
		*d = ""
	default:
		return fmt.Errorf("cannot decode %s into a date", t)
	}
	return nil
}

type Genre struct {
	Name        string `bson:"Name" json:"Name"`
	Description string `bson:"Description" json:"Description"`
}

type Director struct {
	Name  string   `bson:"Name" json:"Name"`
	Bio   string   `bson:"Bio" json:"Bio"`
	Birth DateText `bson:"Birth,omitempty" json:"Birth,omitempty"`
	Death DateText `bson:"Death,omitempty" json:"Death,omitempty"`
}

type Movie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"Title" json:"Title"`
	Description string             `bson:"Description" json:"Description"`
	Genre       Genre              `bson:"Genre" json:"Genre"`
	Director    Director           `bson:"Director" json:"Director"`
	ImagePath   string             `bson:"ImagePath" json:"ImagePath"`
	Featured    bool               `bson:"Featured" json:"Featured"`
}
