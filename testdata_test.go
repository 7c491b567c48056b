package relationship_test

import (
	"context"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/go-arrower/relationship"
)

var ctx = context.Background()

type (
	// Book and Author are many-to-many, one side is an OrderedSet the other a plain slice.
	Book struct {
		ID        uuid.UUID
		Title     string
		Authors   relationship.OrderedSet[*Author]
		Publisher *Publisher
	}

	Author struct {
		ID    uuid.UUID
		Name  string
		Books []*Book
	}

	// Publisher and Book are one-to-many.
	Publisher struct {
		Name  string
		Books *relationship.OrderedSet[*Book]
	}

	// Person and Passport are one-to-one.
	Person struct {
		Name     string
		Passport *Passport
	}

	Passport struct {
		Number string
		Person *Person
	}

	// Car and Driver use inverse names that cannot be derived from their types.
	Car struct {
		Plate string
		Owner *Driver
	}

	Driver struct {
		Name string
		Cars relationship.OrderedSet[*Car]
	}

	// Essay has no inverse on Author.
	Essay struct {
		Title   string
		Writers []*Author `relationship:"contributors"`
	}

	// Article and Tag are many-to-many, Tag exposes its properties as a relationship.Host.
	Article struct {
		Title string
		Tags  relationship.OrderedSet[*Tag]
	}

	Tag struct {
		name     string
		articles relationship.OrderedSet[*Article]
		pinned   *Article
	}
)

func (t *Tag) Relationship(name string) (relationship.Property, bool) {
	switch name {
	case "articles":
		return relationship.Many(&t.articles), true
	case "pinned":
		return relationship.Ref(&t.pinned), true
	default:
		return nil, false
	}
}

func newBook() *Book {
	return &Book{ID: uuid.New(), Title: gofakeit.Sentence(3)}
}

func newAuthor() *Author {
	return &Author{ID: uuid.New(), Name: gofakeit.Name()}
}

func newPublisher() *Publisher {
	return &Publisher{Name: gofakeit.Company()}
}

func newPerson() *Person {
	return &Person{Name: gofakeit.Name()}
}

func newPassport() *Passport {
	return &Passport{Number: gofakeit.Numerify("P########")}
}

func newTag() *Tag {
	return &Tag{name: gofakeit.Word()}
}

func newArticle() *Article {
	return &Article{Title: gofakeit.Sentence(3)}
}
