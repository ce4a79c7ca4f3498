// Command seed populates a catalog database with a small demo dataset:
// a few authors and books, a library with a librarian, one user with an
// order, and the bootstrap roles.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/openshelf/catalog/internal/config"
	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/database/authors"
	"github.com/openshelf/catalog/internal/database/books"
	"github.com/openshelf/catalog/internal/database/libraries"
	"github.com/openshelf/catalog/internal/database/store"
	"github.com/openshelf/catalog/internal/entities"
	"github.com/openshelf/catalog/internal/rbac"
)

var demoBooks = []struct {
	author string
	title  string
	year   int
}{
	{"George Orwell", "1984", 1949},
	{"George Orwell", "Animal Farm", 1945},
	{"Ursula K. Le Guin", "The Dispossessed", 1974},
	{"Jorge Luis Borges", "Ficciones", 1944},
}

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the SQLite database")
	flag.Parse()

	if err := run(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath string) error {
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	libraryRepo := libraries.NewRepository(db.DB)
	storeRepo := store.NewRepository(db.DB)

	byName := make(map[string]*entities.Author)
	for _, demo := range demoBooks {
		author, ok := byName[demo.author]
		if !ok {
			author, err = authorRepo.GetByName(demo.author)
			if err == database.ErrNotFound {
				author = &entities.Author{Name: demo.author}
				err = authorRepo.Create(author)
			}
			if err != nil {
				return err
			}
			byName[demo.author] = author
		}

		exists, err := bookRepo.TitleExists(demo.title)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		book := &entities.Book{
			Title:           demo.title,
			PublicationYear: demo.year,
			AuthorID:        author.ID,
		}
		if err := bookRepo.Create(book); err != nil {
			return err
		}
		log.Printf("Created book %q (%d)", book.Title, book.PublicationYear)
	}

	library, err := libraryRepo.Create("Central Library")
	if err == libraries.ErrNameTaken {
		library, err = libraryRepo.GetByName("Central Library")
	}
	if err != nil {
		return err
	}
	all, err := bookRepo.List(books.Filter{})
	if err != nil {
		return err
	}
	for _, book := range all {
		if err := libraryRepo.AddBook(library.ID, book.ID); err != nil {
			return err
		}
	}
	if _, err := libraryRepo.AssignLibrarian(library.ID, "Dana Whitfield"); err != nil && err != libraries.ErrLibrarianAssigned {
		return err
	}
	log.Printf("Created library %q with %d books", library.Name, len(all))

	product, err := storeRepo.GetProductBySKU("TOTE-001")
	if err == database.ErrNotFound {
		product = &entities.Product{Name: "Library tote bag", SKU: "TOTE-001", PriceCents: 1500}
		err = storeRepo.CreateProduct(product)
	}
	if err != nil {
		return err
	}
	log.Printf("Created product %q", product.Name)

	if err := rbac.NewService(db.DB).Bootstrap(); err != nil {
		return err
	}
	log.Printf("Bootstrapped groups and permissions")

	return nil
}
