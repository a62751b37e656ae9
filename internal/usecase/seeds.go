package usecase

import (
	"context"
	"fmt"

	"BlogForge/internal/domain"
)

// pilotArticle is a pre-written draft shipped with the application so a
// fresh deployment has published content on day one.
type pilotArticle struct {
	Title          string
	Slug           string
	Excerpt        string
	SEODescription string
	SEOKeywords    []string
	ReadingTime    int
	Content        string
}

// SeedPilotArticles inserts the pre-written pilot articles as published
// content. Existing slugs are skipped, so the call is safe to repeat. The
// default category is created when missing; a missing author is fatal
// because articles cannot be attributed.
func (g *Generator) SeedPilotArticles(ctx context.Context) ([]domain.Article, error) {
	category, err := g.ensureCategory(ctx)
	if err != nil {
		return nil, err
	}

	author, err := g.authors.FindFirstByRole(ctx, g.authorRole)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("no %s user found, pilot articles not created", g.authorRole)
		}
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	now := g.now()

	var created []domain.Article
	for _, pilot := range pilotArticles {
		if _, err := g.articles.FindBySlug(ctx, pilot.Slug); err == nil {
			g.log("pilot article already exists", "slug", pilot.Slug)
			continue
		} else if !isNotFound(err) {
			return created, fmt.Errorf("lookup slug %s: %w", pilot.Slug, err)
		}

		publishedAt := now
		row := domain.Article{
			ID:             g.newID(),
			Title:          pilot.Title,
			Slug:           pilot.Slug,
			Content:        pilot.Content,
			Excerpt:        pilot.Excerpt,
			SEOKeywords:    pilot.SEOKeywords,
			SEODescription: pilot.SEODescription,
			ReadingTime:    pilot.ReadingTime,
			IsPublished:    true,
			PublishedAt:    &publishedAt,
			CategoryID:     category.ID,
			AuthorID:       author.ID,
			CreatedAt:      now,
		}

		if err := g.articles.Create(ctx, &row); err != nil {
			return created, fmt.Errorf("seed article %s: %w", pilot.Slug, err)
		}

		g.log("pilot article created", "slug", row.Slug)
		created = append(created, row)
	}

	return created, nil
}

func (g *Generator) ensureCategory(ctx context.Context) (*domain.Category, error) {
	category, err := g.categories.FindByName(ctx, g.categoryName)
	if err == nil {
		return category, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("resolve category: %w", err)
	}

	created := &domain.Category{
		ID:          g.newID(),
		Name:        g.categoryName,
		Description: "Conseils pratiques et astuces pour prendre soin de vos vêtements",
	}
	if err := g.categories.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	g.log("default category created", "name", created.Name)
	return created, nil
}

var pilotArticles = []pilotArticle{
	{
		Title:          "Guide Complet du Nettoyage à Sec : Tout ce que vous devez savoir",
		Slug:           "guide-nettoyage-sec-complet",
		Excerpt:        "Découvrez comment fonctionne le nettoyage à sec, ses avantages et comment bien entretenir vos vêtements délicats avec nos experts.",
		SEODescription: "Guide complet du nettoyage à sec professionnel. Apprenez les techniques, avantages et comment préserver vos vêtements.",
		SEOKeywords:    []string{"nettoyage à sec", "pressing", "guide complet", "vêtements délicats", "professionnel"},
		ReadingTime:    8,
		Content: `
<h2>Introduction</h2>
<p>Le nettoyage à sec est une technique de nettoyage sophistiquée qui utilise des solvants chimiques au lieu de l'eau pour nettoyer les vêtements. Contrairement au lavage traditionnel, le nettoyage à sec est particulièrement adapté aux tissus délicats, aux vêtements de marque et aux pièces qui ne peuvent pas supporter l'eau.</p>

<h2>Comment fonctionne le nettoyage à sec ?</h2>
<p>Le processus de nettoyage à sec se déroule en plusieurs étapes :</p>
<ul>
<li><strong>Inspection :</strong> Chaque vêtement est examiné pour identifier les taches et les zones problématiques.</li>
<li><strong>Pré-traitement :</strong> Les taches sont traitées avec des produits spécialisés avant le nettoyage.</li>
<li><strong>Nettoyage :</strong> Le vêtement est immergé dans un solvant de nettoyage à sec dans une machine spécialisée.</li>
<li><strong>Extraction :</strong> Le solvant est extrait du vêtement.</li>
<li><strong>Séchage :</strong> Le vêtement est séché à basse température.</li>
<li><strong>Finition :</strong> Le vêtement est repassé et inspecté avant livraison.</li>
</ul>

<h2>Quels vêtements nettoyer à sec ?</h2>
<p>Certains vêtements bénéficient particulièrement du nettoyage à sec :</p>
<ul>
<li>Vêtements en soie, laine et cachemire</li>
<li>Costumes et vestes de marque</li>
<li>Robes de cérémonie et robes de soirée</li>
<li>Vêtements avec des détails délicats (perles, paillettes)</li>
<li>Vêtements avec des doublures</li>
<li>Vêtements avec des taches difficiles</li>
</ul>

<h2>Avantages du nettoyage à sec</h2>
<p>Le nettoyage à sec offre de nombreux avantages :</p>
<ul>
<li><strong>Préservation des tissus :</strong> Les solvants sont plus doux que l'eau pour les tissus délicats.</li>
<li><strong>Élimination efficace des taches :</strong> Les solvants sont excellents pour éliminer les taches grasses et les résidus.</li>
<li><strong>Pas de rétrécissement :</strong> Le nettoyage à sec réduit le risque de rétrécissement.</li>
<li><strong>Meilleure durée de vie :</strong> Vos vêtements durent plus longtemps avec un nettoyage à sec régulier.</li>
<li><strong>Résultats professionnels :</strong> Les vêtements reviennent impeccables et bien repassés.</li>
</ul>

<h2>Fréquence recommandée</h2>
<p>La fréquence du nettoyage à sec dépend du type de vêtement et de son utilisation :</p>
<ul>
<li><strong>Costumes :</strong> Tous les 5-6 ports</li>
<li><strong>Robes de soirée :</strong> Après chaque port</li>
<li><strong>Vestes :</strong> Tous les 3-4 ports</li>
<li><strong>Pantalons :</strong> Tous les 4-5 ports</li>
</ul>

<h2>Conseils d'entretien</h2>
<p>Pour maximiser la durée de vie de vos vêtements :</p>
<ul>
<li>Aérez vos vêtements après chaque port</li>
<li>Traitez les taches rapidement</li>
<li>Utilisez des cintres de qualité</li>
<li>Stockez dans un endroit sec et frais</li>
<li>Faites nettoyer à sec régulièrement</li>
</ul>

<h2>Conclusion</h2>
<p>Le nettoyage à sec est un investissement dans la longévité et l'apparence de vos vêtements. Chez Alpha Laundry, nous utilisons les meilleures techniques et produits pour assurer que vos vêtements reviennent impeccables. Contactez-nous aujourd'hui pour découvrir comment nous pouvons prendre soin de vos vêtements précieux.</p>
    `,
	},
	{
		Title:          "Comment Enlever les Taches : Guide Expert du Détachement",
		Slug:           "guide-enlever-taches-expert",
		Excerpt:        "Guide complet pour enlever tous types de taches : vin, café, graisse, sang, chocolat. Techniques professionnelles et astuces pratiques.",
		SEODescription: "Guide expert pour enlever les taches. Découvrez les techniques professionnelles pour éliminer le vin, le café, la graisse et plus.",
		SEOKeywords:    []string{"enlever taches", "détachement", "nettoyage", "astuces", "taches difficiles"},
		ReadingTime:    7,
		Content: `
<h2>Introduction</h2>
<p>Les taches sont l'une des plus grandes préoccupations des propriétaires de vêtements. Qu'il s'agisse d'une tache de vin rouge, de café ou de graisse, savoir comment réagir rapidement peut faire la différence entre un vêtement sauvé et un vêtement ruiné. Ce guide vous présente les techniques professionnelles pour éliminer pratiquement toutes les taches.</p>

<h2>Principes généraux du détachement</h2>
<p>Avant de traiter une tache, gardez ces principes à l'esprit :</p>
<ul>
<li><strong>Agir rapidement :</strong> Plus tôt vous traitez une tache, plus facile elle est à enlever.</li>
<li><strong>Tester d'abord :</strong> Testez toujours le produit sur une zone cachée du vêtement.</li>
<li><strong>Ne pas frotter :</strong> Tamponnez doucement au lieu de frotter vigoureusement.</li>
<li><strong>Utiliser de l'eau froide :</strong> L'eau chaude peut fixer certaines taches.</li>
<li><strong>Laisser sécher :</strong> Laissez le vêtement sécher complètement avant de laver.</li>
</ul>

<h2>Taches de vin rouge</h2>
<p><strong>Méthode 1 : Sel et eau froide</strong></p>
<ul>
<li>Épongez la tache avec du papier absorbant</li>
<li>Saupoudrez de sel pour absorber le liquide</li>
<li>Rincez à l'eau froide</li>
<li>Traitez avec du vinaigre blanc si nécessaire</li>
</ul>
<p><strong>Méthode 2 : Peroxyde d'hydrogène</strong></p>
<ul>
<li>Appliquez du peroxyde d'hydrogène sur la tache</li>
<li>Laissez agir 5-10 minutes</li>
<li>Rincez à l'eau froide</li>
</ul>

<h2>Taches de café</h2>
<p><strong>Traitement immédiat :</strong></p>
<ul>
<li>Épongez avec un chiffon humide</li>
<li>Rincez à l'eau froide</li>
<li>Appliquez un détergent doux</li>
<li>Rincez à nouveau</li>
</ul>
<p><strong>Pour les taches anciennes :</strong></p>
<ul>
<li>Mélangez vinaigre blanc et eau (1:1)</li>
<li>Appliquez sur la tache</li>
<li>Laissez agir 15 minutes</li>
<li>Rincez à l'eau froide</li>
</ul>

<h2>Taches de graisse</h2>
<p><strong>Traitement :</strong></p>
<ul>
<li>Saupoudrez de talc ou de farine pour absorber la graisse</li>
<li>Laissez agir 30 minutes</li>
<li>Brossez doucement</li>
<li>Appliquez du savon à vaisselle</li>
<li>Rincez à l'eau chaude</li>
</ul>

<h2>Taches de sang</h2>
<p><strong>Important : Utilisez toujours de l'eau froide !</strong></p>
<ul>
<li>Rincez immédiatement à l'eau froide</li>
<li>Appliquez du peroxyde d'hydrogène</li>
<li>Laissez agir quelques minutes</li>
<li>Rincez à l'eau froide</li>
<li>Lavez normalement</li>
</ul>

<h2>Taches de chocolat</h2>
<p><strong>Traitement :</strong></p>
<ul>
<li>Laissez sécher complètement</li>
<li>Brossez doucement pour enlever le chocolat sec</li>
<li>Rincez à l'eau froide</li>
<li>Appliquez un détergent doux</li>
<li>Lavez à l'eau tiède</li>
</ul>

<h2>Quand faire appel à un professionnel</h2>
<p>Certaines taches nécessitent l'expertise d'un professionnel :</p>
<ul>
<li>Taches sur des tissus délicats (soie, cachemire)</li>
<li>Taches anciennes ou incrustées</li>
<li>Taches sur des vêtements de marque</li>
<li>Taches multiples ou complexes</li>
</ul>

<h2>Conclusion</h2>
<p>Avec ces techniques professionnelles, vous pouvez éliminer la plupart des taches. Cependant, pour les vêtements précieux ou les taches difficiles, n'hésitez pas à faire appel à Alpha Laundry. Nos experts en détachement sauront prendre soin de vos vêtements.</p>
    `,
	},
	{
		Title:          "Entretien des Vêtements de Marque : Préserver la Qualité et la Valeur",
		Slug:           "entretien-vetements-marque",
		Excerpt:        "Comment entretenir vos vêtements de marque pour préserver leur qualité et leur durée de vie. Conseils d'experts en textile.",
		SEODescription: "Guide complet pour entretenir les vêtements de marque. Préservez la qualité et la valeur de vos pièces de luxe.",
		SEOKeywords:    []string{"vêtements de marque", "entretien", "luxe", "préserver", "qualité"},
		ReadingTime:    6,
		Content: `
<h2>Introduction</h2>
<p>Les vêtements de marque représentent un investissement important. Pour protéger cet investissement et prolonger la durée de vie de vos pièces de luxe, un entretien approprié est essentiel. Ce guide vous présente les meilleures pratiques pour préserver vos vêtements de marque.</p>

<h2>Pourquoi l'entretien est crucial</h2>
<p>Un entretien approprié :</p>
<ul>
<li>Prolonge la durée de vie de vos vêtements</li>
<li>Préserve la couleur et l'éclat</li>
<li>Maintient la forme et la structure</li>
<li>Préserve la valeur de revente</li>
<li>Assure le confort et la performance</li>
</ul>

<h2>Lire les étiquettes de soin</h2>
<p>Les étiquettes de soin contiennent des informations essentielles :</p>
<ul>
<li><strong>Symboles de lavage :</strong> Indiquent la température et le type de lavage</li>
<li><strong>Symboles de blanchiment :</strong> Indiquent si le blanchiment est autorisé</li>
<li><strong>Symboles de séchage :</strong> Indiquent la méthode de séchage recommandée</li>
<li><strong>Symboles de repassage :</strong> Indiquent la température de repassage</li>
<li><strong>Symboles de nettoyage à sec :</strong> Indiquent les solvants autorisés</li>
</ul>

<h2>Lavage des vêtements de luxe</h2>
<p><strong>À la main :</strong></p>
<ul>
<li>Utilisez de l'eau tiède et un détergent doux</li>
<li>Immergez le vêtement 5-10 minutes</li>
<li>Rincez doucement plusieurs fois</li>
<li>Ne tordez pas le vêtement</li>
</ul>
<p><strong>À la machine :</strong></p>
<ul>
<li>Utilisez un cycle délicat</li>
<li>Utilisez un détergent pour tissus délicats</li>
<li>Mettez le vêtement dans un filet de lavage</li>
<li>Utilisez de l'eau froide ou tiède</li>
</ul>

<h2>Séchage optimal</h2>
<p><strong>Méthode recommandée :</strong></p>
<ul>
<li>Évitez le sèche-linge pour les vêtements de marque</li>
<li>Séchez à plat sur une serviette propre</li>
<li>Ou suspendez sur un cintre rembourré</li>
<li>Évitez la lumière directe du soleil</li>
<li>Assurez une bonne circulation d'air</li>
</ul>

<h2>Repassage sans risque</h2>
<p><strong>Conseils de repassage :</strong></p>
<ul>
<li>Vérifiez l'étiquette pour la température recommandée</li>
<li>Utilisez un fer à repasser de qualité</li>
<li>Utilisez un tissu de protection entre le fer et le vêtement</li>
<li>Repassez à basse température pour les tissus délicats</li>
<li>Repassez sur l'envers du vêtement si possible</li>
</ul>

<h2>Stockage approprié</h2>
<p><strong>Pour préserver vos vêtements :</strong></p>
<ul>
<li>Utilisez des cintres rembourés ou en bois</li>
<li>Stockez dans un endroit sec et frais</li>
<li>Évitez la lumière directe du soleil</li>
<li>Utilisez des housses de protection</li>
<li>Aérez régulièrement vos vêtements</li>
<li>Utilisez des boules de naphtaline ou de cèdre</li>
</ul>

<h2>Nettoyage à sec professionnel</h2>
<p>Pour les vêtements de marque, le nettoyage à sec professionnel est recommandé :</p>
<ul>
<li>Utilise des techniques spécialisées</li>
<li>Préserve les tissus délicats</li>
<li>Élimine les taches difficiles</li>
<li>Prolonge la durée de vie</li>
<li>Maintient l'apparence premium</li>
</ul>

<h2>Conclusion</h2>
<p>L'entretien approprié de vos vêtements de marque est un investissement dans leur longévité et leur valeur. Chez Alpha Laundry, nous comprenons l'importance de vos pièces de luxe et nous offrons un service de nettoyage spécialisé pour les vêtements de marque. Confiez-nous vos pièces précieuses.</p>
    `,
	},
	{
		Title:          "Nettoyage Écologique : Pourquoi c'est Important pour Vous et la Planète",
		Slug:           "nettoyage-ecologique-important",
		Excerpt:        "Découvrez pourquoi le nettoyage écologique est important pour votre santé et l'environnement. Les avantages du nettoyage durable.",
		SEODescription: "Nettoyage écologique : avantages pour la santé et l'environnement. Découvrez le nettoyage durable et responsable.",
		SEOKeywords:    []string{"nettoyage écologique", "durable", "environnement", "responsable", "santé"},
		ReadingTime:    5,
		Content: `
<h2>Introduction</h2>
<p>Le nettoyage écologique n'est pas seulement une tendance, c'est une nécessité. Avec la prise de conscience croissante des enjeux environnementaux, de plus en plus de personnes cherchent des alternatives durables aux produits de nettoyage traditionnels. Ce guide explore les avantages du nettoyage écologique pour vous et la planète.</p>

<h2>Impact environnemental du nettoyage traditionnel</h2>
<p>Les produits de nettoyage traditionnels ont un impact significatif sur l'environnement :</p>
<ul>
<li><strong>Pollution de l'eau :</strong> Les produits chimiques se retrouvent dans les cours d'eau</li>
<li><strong>Toxicité aquatique :</strong> Les produits chimiques tuent la vie aquatique</li>
<li><strong>Accumulation :</strong> Les produits chimiques s'accumulent dans l'écosystème</li>
<li><strong>Émissions de carbone :</strong> La production et le transport génèrent des émissions</li>
<li><strong>Déchets d'emballage :</strong> Les emballages plastiques polluent les océans</li>
</ul>

<h2>Avantages du nettoyage écologique</h2>
<p><strong>Pour l'environnement :</strong></p>
<ul>
<li>Réduit la pollution de l'eau</li>
<li>Protège la vie aquatique</li>
<li>Réduit les émissions de carbone</li>
<li>Utilise des emballages durables</li>
<li>Soutient l'économie circulaire</li>
</ul>
<p><strong>Pour votre santé :</strong></p>
<ul>
<li>Réduit l'exposition aux produits chimiques toxiques</li>
<li>Prévient les allergies et les irritations</li>
<li>Améliore la qualité de l'air intérieur</li>
<li>Protège la santé des enfants</li>
<li>Réduit les risques de maladies chroniques</li>
</ul>

<h2>Produits écologiques vs chimiques</h2>
<p><strong>Produits écologiques :</strong></p>
<ul>
<li>Fabriqués à partir d'ingrédients naturels</li>
<li>Biodégradables</li>
<li>Non toxiques</li>
<li>Emballages durables</li>
<li>Efficaces et sûrs</li>
</ul>
<p><strong>Produits chimiques :</strong></p>
<ul>
<li>Contiennent des substances synthétiques</li>
<li>Non biodégradables</li>
<li>Toxiques pour l'environnement et la santé</li>
<li>Emballages plastiques</li>
<li>Efficaces mais dangereux</li>
</ul>

<h2>Santé et bien-être</h2>
<p>Le nettoyage écologique contribue à votre bien-être :</p>
<ul>
<li>Réduit l'exposition aux toxines</li>
<li>Améliore la qualité de l'air</li>
<li>Prévient les problèmes respiratoires</li>
<li>Réduit les allergies</li>
<li>Crée un environnement plus sain</li>
</ul>

<h2>Durabilité des vêtements</h2>
<p>Le nettoyage écologique prolonge la durée de vie de vos vêtements :</p>
<ul>
<li>Les produits doux préservent les tissus</li>
<li>Réduit l'usure et la décoloration</li>
<li>Maintient l'élasticité des fibres</li>
<li>Prévient le rétrécissement</li>
<li>Économise de l'argent à long terme</li>
</ul>

<h2>Notre engagement écologique</h2>
<p>Chez Alpha Laundry, nous sommes engagés envers le nettoyage écologique :</p>
<ul>
<li>Utilisons des produits écologiques certifiés</li>
<li>Réduisons notre consommation d'eau</li>
<li>Utilisons des énergies renouvelables</li>
<li>Recyclons nos emballages</li>
<li>Soutenons les initiatives environnementales</li>
</ul>

<h2>Conclusion</h2>
<p>Le nettoyage écologique est bénéfique pour vous, vos vêtements et la planète. En choisissant des services de nettoyage écologiques, vous contribuez à un avenir plus durable. Rejoignez-nous dans notre mission de nettoyage responsable.</p>
    `,
	},
}
